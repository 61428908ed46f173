package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ChangeCreated     = "created"
	ChangeRescheduled = "rescheduled"
	ChangeCancelled   = "cancelled"
)

// Change is one entry of a reservation's history. Old and New are
// snapshots serialized as JSON.
type Change struct {
	ReservationID uuid.UUID
	ChangedByType string
	ChangedByID   *uuid.UUID
	ChangeType    string
	Old           any
	New           any
	Reason        string
}

type Store interface {
	InsertChange(ctx context.Context, change *models.ReservationChange) error
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Record(ctx context.Context, ch Change) error {
	row := models.ReservationChange{
		ReservationID: ch.ReservationID,
		ChangedByType: ch.ChangedByType,
		ChangedByID:   ch.ChangedByID,
		ChangeType:    ch.ChangeType,
		OldValues:     marshal(ch.Old),
		NewValues:     marshal(ch.New),
		Reason:        ch.Reason,
	}
	return l.store.InsertChange(ctx, &row)
}

func marshal(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
