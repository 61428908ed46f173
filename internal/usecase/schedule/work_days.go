package schedule

import (
	"context"
	"sort"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type Store interface {
	ListWorkDays(ctx context.Context, barberID uuid.UUID) ([]models.WorkDay, error)
	ReplaceWorkDays(ctx context.Context, barberID uuid.UUID, days []models.WorkDay) error
}

type WorkDayInput struct {
	DayOfWeek string  `json:"dayOfWeek"`
	IsWorking bool    `json:"isWorking"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

// WorkDays lets a barber read and replace their weekly hours. Days left
// out of a replacement have no row, which blocks bookings on them.
type WorkDays struct {
	store Store
}

func NewWorkDays(store Store) *WorkDays {
	return &WorkDays{store: store}
}

func (uc *WorkDays) List(ctx context.Context, caller domain.Caller) ([]models.WorkDay, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	days, err := uc.store.ListWorkDays(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	sortByWeekday(days)
	return days, nil
}

func (uc *WorkDays) Replace(
	ctx context.Context,
	caller domain.Caller,
	in []WorkDayInput,
) ([]models.WorkDay, error) {

	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(in))
	days := make([]models.WorkDay, 0, len(in))

	for _, d := range in {
		wd, ok := timezone.ParseWeekday(d.DayOfWeek)
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		name := timezone.WeekdayName(wd)
		if seen[name] {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		seen[name] = true

		if err := validateHours(d.StartTime, d.EndTime); err != nil {
			return nil, err
		}

		days = append(days, models.WorkDay{
			BarberID:  caller.ID,
			DayOfWeek: name,
			IsWorking: d.IsWorking,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	if err := uc.store.ReplaceWorkDays(ctx, caller.ID, days); err != nil {
		return nil, err
	}
	sortByWeekday(days)
	return days, nil
}

func requireStaff(caller domain.Caller) error {
	if caller.ID == uuid.Nil {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	if caller.Type != domain.CallerBarber && caller.Type != domain.CallerAdmin {
		return httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}
	return nil
}

// validateHours accepts both or neither bound; a lone bound or an empty
// window is rejected.
func validateHours(start, end *string) error {
	if start == nil && end == nil {
		return nil
	}
	if start == nil || end == nil {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	s, ok1 := timezone.ParseHM(*start)
	e, ok2 := timezone.ParseHM(*end)
	if !ok1 || !ok2 || s >= e {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	return nil
}

func sortByWeekday(days []models.WorkDay) {
	sort.SliceStable(days, func(i, j int) bool {
		a, _ := timezone.ParseWeekday(days[i].DayOfWeek)
		b, _ := timezone.ParseWeekday(days[j].DayOfWeek)
		return a < b
	})
}
