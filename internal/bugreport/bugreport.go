// Package bugreport forwards unexpected failures to error tracking.
// Business rejections never go through here.
package bugreport

import (
	"context"

	"go.uber.org/zap"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Report struct {
	Err      error
	Action   string
	Severity Severity
	Meta     map[string]any
}

type Reporter interface {
	Report(ctx context.Context, r Report)
}

// ZapReporter writes reports as error-level log lines.
type ZapReporter struct {
	log *zap.Logger
}

func NewZapReporter(log *zap.Logger) *ZapReporter {
	return &ZapReporter{log: log.Named("bugreport")}
}

func (z *ZapReporter) Report(_ context.Context, r Report) {
	sev := r.Severity
	if sev == "" {
		sev = SeverityMedium
	}

	fields := make([]zap.Field, 0, len(r.Meta)+3)
	fields = append(fields,
		zap.Error(r.Err),
		zap.String("action", r.Action),
		zap.String("severity", string(sev)),
	)
	for k, v := range r.Meta {
		fields = append(fields, zap.Any(k, v))
	}

	z.log.Error("unexpected failure", fields...)
}

// Nop drops every report.
type Nop struct{}

func (Nop) Report(context.Context, Report) {}
