package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// failure maps any use case error to the response taxonomy. Business
// rejections are answered as they are; everything else is reported as a
// bug first.
type failure struct {
	bugs bugreport.Reporter
}

func (f failure) write(c *gin.Context, action string, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		httperr.Business(c, be)
		return
	}

	code := httperr.CodeUnknown
	severity := bugreport.SeverityHigh
	if errors.Is(err, domain.ErrStorage) {
		code = httperr.CodeDatabase
		severity = bugreport.SeverityMedium
	}

	meta := map[string]any{
		"route":  c.FullPath(),
		"method": c.Request.Method,
	}
	if caller, ok := middleware.CallerFrom(c); ok {
		meta["caller_id"] = caller.ID.String()
		meta["caller_type"] = string(caller.Type)
	}

	f.bugs.Report(c.Request.Context(), bugreport.Report{
		Err:      err,
		Action:   action,
		Severity: severity,
		Meta:     meta,
	})
	_ = c.Error(err)
	httperr.Code(c, code)
}

func caller(c *gin.Context) (domain.Caller, bool) {
	cl, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Code(c, httperr.CodeUnauthorized)
	}
	return cl, ok
}

// parseID treats an empty string as absent. A malformed id is reported
// through ok=false.
func parseID(s string) (uuid.UUID, bool) {
	if s == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}

func parseIDs(values ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, ok := parseID(v)
		if !ok {
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

func validationError(c *gin.Context) {
	httperr.Code(c, httperr.CodeValidation)
}
