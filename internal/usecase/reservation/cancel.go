package reservation

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const maxReasonLen = 255

type CancelInput struct {
	Caller domain.Caller

	ReservationID   uuid.UUID
	ExpectedVersion *int
	Reason          string
}

type CancelOutput struct {
	ID      uuid.UUID
	Status  string
	Version int
}

type CancelReservation struct {
	env Env
}

func NewCancelReservation(env Env) *CancelReservation {
	return &CancelReservation{env: env}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	in CancelInput,
) (*CancelOutput, error) {

	if err := validateCaller(in.Caller); err != nil {
		return nil, err
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if in.ReservationID == uuid.Nil ||
		(in.ExpectedVersion != nil && *in.ExpectedVersion < 1) ||
		utf8.RuneCountInString(in.Reason) > maxReasonLen {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	repo := uc.env.Repo

	var (
		current domain.Lookup[models.Reservation]
		isAdmin bool
	)

	b := newBatch(ctx, uc.env.logger())
	critical(b, &current, func(ctx context.Context) domain.Lookup[models.Reservation] {
		return repo.GetReservation(ctx, in.ReservationID)
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

	if current.State() == domain.LookupNotFound {
		return nil, httperr.ErrBusiness(httperr.CodeReservationNotFound)
	}
	res := current.Value()

	if in.ExpectedVersion != nil && *in.ExpectedVersion != res.Version {
		return nil, httperr.ErrBusiness(httperr.CodeConcurrencyConflict)
	}

	if err := authorizeOwner(in.Caller, &res, isAdmin); err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Cancellation notice (customers only)
	// --------------------------------------------------
	now := uc.env.now()
	var settings *models.BarberBookingSettings
	if in.Caller.IsCustomer() {
		l := repo.GetBookingSettings(ctx, res.BarberID)
		if l.State() == domain.LookupFailed {
			uc.env.logger().Warn("lookup failed, source ignored",
				zap.String("source", "booking_settings"), zap.Error(l.Err()))
		}
		settings = l.Ptr()
	}
	if err := domain.EvaluateCancelPolicy(in.Caller, now, &res, settings); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Versioned cancel
	// --------------------------------------------------
	before := domain.Snapshot(&res)
	next := res
	by := in.Caller.CancelledBy()
	if err := domain.Cancel(&next, by, in.Reason, now); err != nil {
		return nil, err
	}

	if err := repo.CancelVersioned(ctx, domain.CancelParams{
		ReservationID:   res.ID,
		ExpectedVersion: res.Version,
		CancelledBy:     by,
		Reason:          in.Reason,
		At:              now,
	}); err != nil {
		return nil, err
	}

	uc.env.record(in.Caller, audit.Change{
		ReservationID: res.ID,
		ChangeType:    audit.ChangeCancelled,
		Old:           before,
		New:           domain.Snapshot(&next),
		Reason:        in.Reason,
	})

	return &CancelOutput{
		ID:      next.ID,
		Status:  next.Status,
		Version: next.Version,
	}, nil
}
