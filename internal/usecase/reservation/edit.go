package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const msgBarberChangeDenied = "לקוחות אינם יכולים להחליף ספר. יש לבטל ולקבוע תור חדש."

// ======================================================
// INPUT / OUTPUT
// ======================================================

type EditInput struct {
	Caller domain.Caller

	ReservationID uuid.UUID
	BarberID      uuid.UUID
	ServiceID     uuid.UUID
	TimeTimestamp int64

	// ExpectedVersion rejects stale clients before any other check.
	ExpectedVersion *int
}

type EditOutput struct {
	ReservationID uuid.UUID
	NewVersion    int
}

// ======================================================
// USE CASE
// ======================================================

type EditReservation struct {
	env Env
}

func NewEditReservation(env Env) *EditReservation {
	return &EditReservation{env: env}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EditReservation) Execute(
	ctx context.Context,
	in EditInput,
) (*EditOutput, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if err := validateCaller(in.Caller); err != nil {
		return nil, err
	}
	if in.ReservationID == uuid.Nil ||
		in.BarberID == uuid.Nil ||
		in.ServiceID == uuid.Nil ||
		in.TimeTimestamp <= 0 ||
		(in.ExpectedVersion != nil && *in.ExpectedVersion < 1) {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	slot := uc.env.Norm.Normalize(in.TimeTimestamp)
	repo := uc.env.Repo

	// --------------------------------------------------
	// 2. Context (parallel)
	// --------------------------------------------------
	var (
		sc      slotContext
		current domain.Lookup[models.Reservation]
		service domain.Lookup[models.Service]
		isAdmin bool
	)

	b := newBatch(ctx, uc.env.logger())
	critical(b, &current, func(ctx context.Context) domain.Lookup[models.Reservation] {
		return repo.GetReservation(ctx, in.ReservationID)
	})
	b.fetchSlot(repo, in.BarberID, slot, &in.ReservationID, &sc)
	single(b, "service", &service, func(ctx context.Context) domain.Lookup[models.Service] {
		return repo.GetService(ctx, in.ServiceID)
	})
	if in.Caller.Type == domain.CallerAdmin {
		b.g.Go(func() error {
			ok, err := repo.IsAdmin(b.ctx, in.Caller.ID)
			isAdmin = ok
			return err
		})
	}
	if err := b.wait(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Reservation + stale version
	// --------------------------------------------------
	if current.State() == domain.LookupNotFound {
		return nil, httperr.ErrBusiness(httperr.CodeReservationNotFound)
	}
	res := current.Value()

	if in.ExpectedVersion != nil && *in.ExpectedVersion != res.Version {
		return nil, httperr.ErrBusiness(httperr.CodeConcurrencyConflict)
	}

	// --------------------------------------------------
	// 4. Authorization
	// --------------------------------------------------
	if err := authorizeOwner(in.Caller, &res, isAdmin); err != nil {
		return nil, err
	}
	if in.Caller.IsCustomer() && in.BarberID != res.BarberID {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotAuthorized, msgBarberChangeDenied)
	}

	// --------------------------------------------------
	// 5. State of the stored reservation
	// --------------------------------------------------
	if err := domain.CanEdit(domain.Status(res.Status)); err != nil {
		return nil, err
	}
	now := uc.env.now()
	if err := domain.EvaluateEditPolicy(in.Caller, now, &res); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Target barber + service
	// --------------------------------------------------
	if sc.Barber.State() == domain.LookupNotFound {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}
	if in.BarberID != res.BarberID && sc.Barber.Value().IsPaused {
		return nil, httperr.ErrBusiness(httperr.CodeBarberPaused)
	}

	if in.ServiceID != res.ServiceID {
		if service.State() == domain.LookupFailed {
			return nil, service.Err()
		}
		if !validService(service) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidService)
		}
	}

	if domain.Unchanged(&res, in.BarberID, in.ServiceID, slot) {
		return nil, httperr.ErrBusiness(httperr.CodeSameTime)
	}

	// --------------------------------------------------
	// 7. Policy + availability rules
	// --------------------------------------------------
	if err := evaluateSlot(in.Caller, now, slot, &sc); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Versioned update
	// --------------------------------------------------
	before := domain.Snapshot(&res)
	next := res
	if err := domain.Reschedule(&next, in.BarberID, in.ServiceID, slot, now); err != nil {
		return nil, err
	}

	if err := repo.UpdateVersioned(ctx, &next, res.Version); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9. Audit
	// --------------------------------------------------
	uc.env.record(in.Caller, audit.Change{
		ReservationID: res.ID,
		ChangeType:    audit.ChangeRescheduled,
		Old:           before,
		New:           domain.Snapshot(&next),
	})

	return &EditOutput{
		ReservationID: res.ID,
		NewVersion:    next.Version,
	}, nil
}
