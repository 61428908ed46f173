package bugreport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapReporter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewZapReporter(zap.New(core))

	r.Report(context.Background(), Report{
		Err:    errors.New("boom"),
		Action: "create reservation",
		Meta:   map[string]any{"route": "/api/reservations/create"},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "create reservation", fields["action"])
	assert.Equal(t, "medium", fields["severity"])
	assert.Equal(t, "/api/reservations/create", fields["route"])
}
