package reservation

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	defaultChangesLimit = 50
	maxChangesLimit     = 200
)

type ChangeReader interface {
	ListChanges(ctx context.Context, reservationID uuid.UUID, limit, offset int) ([]models.ReservationChange, int64, error)
}

type ListChangesInput struct {
	Caller        domain.Caller
	ReservationID uuid.UUID
	Page          int
	Limit         int
}

type ListChangesOutput struct {
	Page    int                        `json:"page"`
	Limit   int                        `json:"limit"`
	Total   int64                      `json:"total"`
	Changes []models.ReservationChange `json:"changes"`
}

// ListChanges returns the audit trail of a reservation to its barber, its
// customer or an admin.
type ListChanges struct {
	env     Env
	changes ChangeReader
}

func NewListChanges(env Env, changes ChangeReader) *ListChanges {
	return &ListChanges{env: env, changes: changes}
}

func (uc *ListChanges) Execute(
	ctx context.Context,
	in ListChangesInput,
) (*ListChangesOutput, error) {

	if err := validateCaller(in.Caller); err != nil {
		return nil, err
	}
	if in.ReservationID == uuid.Nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > maxChangesLimit {
		in.Limit = defaultChangesLimit
	}

	current := uc.env.Repo.GetReservation(ctx, in.ReservationID)
	switch current.State() {
	case domain.LookupFailed:
		return nil, current.Err()
	case domain.LookupNotFound:
		return nil, httperr.ErrBusiness(httperr.CodeReservationNotFound)
	}
	res := current.Value()

	isAdmin := false
	if in.Caller.Type == domain.CallerAdmin {
		ok, err := uc.env.Repo.IsAdmin(ctx, in.Caller.ID)
		if err != nil {
			return nil, err
		}
		isAdmin = ok
	}
	if err := authorizeOwner(in.Caller, &res, isAdmin); err != nil {
		return nil, err
	}

	changes, total, err := uc.changes.ListChanges(ctx, res.ID, in.Limit, (in.Page-1)*in.Limit)
	if err != nil {
		return nil, err
	}

	return &ListChangesOutput{
		Page:    in.Page,
		Limit:   in.Limit,
		Total:   total,
		Changes: changes,
	}, nil
}
