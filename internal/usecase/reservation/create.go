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
	"github.com/BruksfildServices01/barber-booking/internal/notify"
)

const maxNotesLen = 500

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateInput struct {
	Caller domain.Caller

	BarberID  uuid.UUID
	ServiceID uuid.UUID
	// CustomerID is taken from the caller for customers and required
	// when staff book on a customer's behalf.
	CustomerID uuid.UUID

	CustomerName  string
	CustomerPhone string

	TimeTimestamp int64
	Notes         string
}

type CreateOutput struct {
	ReservationID uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	env               Env
	notifier          *notify.Detached
	maxFutureBookings int
}

func NewCreateReservation(
	env Env,
	notifier *notify.Detached,
	maxFutureBookings int,
) *CreateReservation {
	return &CreateReservation{
		env:               env,
		notifier:          notifier,
		maxFutureBookings: maxFutureBookings,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateInput,
) (*CreateOutput, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if err := uc.validate(&in); err != nil {
		return nil, err
	}

	slot := uc.env.Norm.Normalize(in.TimeTimestamp)
	repo := uc.env.Repo

	// --------------------------------------------------
	// 2. Context (parallel)
	// --------------------------------------------------
	var (
		sc      slotContext
		service domain.Lookup[models.Service]
		blocked bool
	)

	b := newBatch(ctx, uc.env.logger())
	b.fetchSlot(repo, in.BarberID, slot, nil, &sc)
	single(b, "service", &service, func(ctx context.Context) domain.Lookup[models.Service] {
		return repo.GetService(ctx, in.ServiceID)
	})
	optional(b, "blocked_customers", &blocked, func(ctx context.Context) (bool, error) {
		return repo.IsPhoneBlocked(ctx, in.BarberID, in.CustomerPhone)
	})
	if err := b.wait(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Barber
	// --------------------------------------------------
	if sc.Barber.State() == domain.LookupNotFound {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}
	if sc.Barber.Value().IsPaused {
		return nil, httperr.ErrBusiness(httperr.CodeBarberPaused)
	}

	// --------------------------------------------------
	// 4. Block list (non-revealing)
	// --------------------------------------------------
	if blocked {
		uc.notifyBlocked(ctx, in)
		return nil, httperr.ErrBusiness(httperr.CodeGeneric)
	}

	// --------------------------------------------------
	// 5. Service
	// --------------------------------------------------
	if service.State() == domain.LookupFailed {
		return nil, service.Err()
	}
	if !validService(service) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidService)
	}

	// --------------------------------------------------
	// 6. Policy + availability rules
	// --------------------------------------------------
	now := uc.env.now()
	if err := evaluateSlot(in.Caller, now, slot, &sc); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Atomic commit
	// --------------------------------------------------
	params := domain.CreateParams{
		BarberID:              in.BarberID,
		ServiceID:             in.ServiceID,
		CustomerID:            in.CustomerID,
		CustomerName:          in.CustomerName,
		CustomerPhone:         in.CustomerPhone,
		Slot:                  slot,
		Notes:                 in.Notes,
		EnforceCustomerLimits: in.Caller.IsCustomer(),
		MaxFutureBookings:     uc.maxFutureBookings,
		Now:                   now,
	}
	if s := sc.Settings.Ptr(); s != nil && s.MaxBookingDaysAhead > 0 {
		days := s.MaxBookingDaysAhead
		params.MaxDaysAhead = &days
	}

	id, err := repo.CreateAtomic(ctx, params)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeCustomerBlocked) {
			return nil, httperr.ErrBusiness(httperr.CodeGeneric)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 8. Audit
	// --------------------------------------------------
	created := models.Reservation{
		ID:         id,
		BarberID:   in.BarberID,
		ServiceID:  in.ServiceID,
		CustomerID: in.CustomerID,
		Status:     string(domain.InitialStatus()),
		Version:    1,
	}
	domain.ApplySlot(&created, slot)

	uc.env.record(in.Caller, audit.Change{
		ReservationID: id,
		ChangeType:    audit.ChangeCreated,
		New:           domain.Snapshot(&created),
	})

	return &CreateOutput{ReservationID: id}, nil
}

func (uc *CreateReservation) validate(in *CreateInput) error {
	if err := validateCaller(in.Caller); err != nil {
		return err
	}
	if in.Caller.IsCustomer() {
		in.CustomerID = in.Caller.ID
	}

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.Notes = strings.TrimSpace(in.Notes)

	switch {
	case in.BarberID == uuid.Nil,
		in.ServiceID == uuid.Nil,
		in.CustomerID == uuid.Nil,
		in.CustomerName == "",
		domain.NormalizePhone(in.CustomerPhone) == "",
		in.TimeTimestamp <= 0,
		utf8.RuneCountInString(in.Notes) > maxNotesLen:
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	return nil
}

func (uc *CreateReservation) notifyBlocked(ctx context.Context, in CreateInput) {
	if uc.notifier == nil {
		return
	}

	phone := domain.NormalizePhone(in.CustomerPhone)
	uc.env.logger().Info("blocked customer attempted booking",
		zap.String("barber_id", in.BarberID.String()))

	uc.notifier.Go(ctx, notify.Message{
		Kind:          notify.KindBlockedAttempt,
		Channel:       notify.ChannelPush,
		RecipientType: string(domain.CallerBarber),
		RecipientID:   in.BarberID,
		Title:         "ניסיון הזמנה מלקוח חסום",
		Body:          "לקוח חסום ניסה לקבוע תור: " + in.CustomerName,
		Data: map[string]string{
			"customerPhone": phone,
		},
		DedupKey: "blocked:" + in.BarberID.String() + ":" + phone,
	})
}
