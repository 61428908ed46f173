package reservation

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Env is what every reservation use case shares.
type Env struct {
	Repo  domain.Repository
	Norm  timezone.Normalizer
	Audit *audit.Dispatcher
	Log   *zap.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now().In(e.Norm.Location())
	}
	return timezone.Now(e.Norm.Location())
}

func (e Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e Env) record(caller domain.Caller, ch audit.Change) {
	if e.Audit == nil {
		return
	}
	id := caller.ID
	ch.ChangedByType = string(caller.Type)
	ch.ChangedByID = &id
	e.Audit.Dispatch(ch)
}

func validateCaller(c domain.Caller) error {
	if c.ID == uuid.Nil || !c.Type.Valid() {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	return nil
}

// authorizeOwner checks that the caller may act on an existing reservation.
// Admins are recognized by a live role lookup, never by id comparison.
func authorizeOwner(caller domain.Caller, r *models.Reservation, isAdmin bool) error {
	switch caller.Type {
	case domain.CallerCustomer:
		if r.CustomerID == caller.ID {
			return nil
		}
	case domain.CallerBarber:
		if r.BarberID == caller.ID {
			return nil
		}
	case domain.CallerAdmin:
		if isAdmin {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeNotAuthorized)
}

func validService(l domain.Lookup[models.Service]) bool {
	return l.State() == domain.LookupFound && l.Value().IsActive
}
