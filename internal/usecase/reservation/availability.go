package reservation

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AvailabilityInput struct {
	Caller   domain.Caller
	BarberID uuid.UUID
	Date     string
}

type AvailableSlot struct {
	Time          string `json:"time"`
	TimeTimestamp int64  `json:"timeTimestamp"`
}

type AvailabilityOutput struct {
	Date          string          `json:"date"`
	DateTimestamp int64           `json:"dateTimestamp"`
	DayName       string          `json:"dayName"`
	Slots         []AvailableSlot `json:"slots"`
}

// GetAvailability lists the free slots of one barber's day, judged by the
// same policy and rules as a booking.
type GetAvailability struct {
	env Env
}

func NewGetAvailability(env Env) *GetAvailability {
	return &GetAvailability{env: env}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityOutput, error) {

	if err := validateCaller(in.Caller); err != nil {
		return nil, err
	}
	if in.BarberID == uuid.Nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	day, err := uc.env.Norm.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	// every candidate of the day shares date, weekday and day start
	dayKey := uc.env.Norm.NormalizeTime(day)
	repo := uc.env.Repo

	var (
		sc       slotContext
		reserved []models.Reservation
	)

	b := newBatch(ctx, uc.env.logger())
	b.fetchSlot(repo, in.BarberID, dayKey, nil, &sc)
	optional(b, "day_reservations", &reserved, func(ctx context.Context) ([]models.Reservation, error) {
		return repo.ListConfirmedForDay(ctx, in.BarberID, dayKey.DayStartMs())
	})
	if err := b.wait(); err != nil {
		return nil, err
	}

	if sc.Barber.State() == domain.LookupNotFound {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}
	if sc.Barber.Value().IsPaused {
		return nil, httperr.ErrBusiness(httperr.CodeBarberPaused)
	}

	out := &AvailabilityOutput{
		Date:          dayKey.Date,
		DateTimestamp: dayKey.DayStartMs(),
		DayName:       dayKey.Weekday,
		Slots:         []AvailableSlot{},
	}

	taken := make(map[int64]bool, len(reserved))
	for _, r := range reserved {
		taken[r.TimeTimestamp] = true
	}

	now := uc.env.now()
	for _, slot := range uc.env.Norm.DaySlots(day, 0, 24*60) {
		sc.Constraints.SlotTaken = taken[slot.StartMs()]
		if evaluateSlot(in.Caller, now, slot, &sc) != nil {
			continue
		}
		out.Slots = append(out.Slots, AvailableSlot{
			Time:          slot.TimeOfDay,
			TimeTimestamp: slot.StartMs(),
		})
	}

	return out, nil
}
