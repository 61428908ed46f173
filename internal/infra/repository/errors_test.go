package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// pgErr wraps a postgres error the way it reaches the repository from a
// gorm transaction.
func pgErr(code, constraint string) error {
	return fmt.Errorf("tx: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
}

func TestTranslateWriteError_Postgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"barber slot index", pgErr(pgerrcode.UniqueViolation, barberSlotIndex), httperr.CodeSlotTaken},
		{"customer slot index", pgErr(pgerrcode.UniqueViolation, customerSlotIndex), httperr.CodeCustomerDoubleBooking},
		{"serialization failure", pgErr(pgerrcode.SerializationFailure, ""), httperr.CodeConcurrencyConflict},
		{"deadlock", pgErr(pgerrcode.DeadlockDetected, ""), httperr.CodeConcurrencyConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httperr.CodeOf(translateWriteError("update reservation", tt.err)))
		})
	}

	t.Run("other unique index is a storage error", func(t *testing.T) {
		err := translateWriteError("update reservation", pgErr(pgerrcode.UniqueViolation, "uq_other"))
		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.Empty(t, httperr.CodeOf(err))
	})
}

func TestTranslateCreateError_Postgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"barber slot index", pgErr(pgerrcode.UniqueViolation, barberSlotIndex), httperr.CodeSlotTaken},
		{"customer slot index", pgErr(pgerrcode.UniqueViolation, customerSlotIndex), httperr.CodeCustomerDoubleBooking},
		{"serialization failure loses the slot", pgErr(pgerrcode.SerializationFailure, ""), httperr.CodeSlotTaken},
		{"deadlock loses the slot", pgErr(pgerrcode.DeadlockDetected, ""), httperr.CodeSlotTaken},
		{"business error passes through", httperr.ErrBusiness(httperr.CodeBarberPaused), httperr.CodeBarberPaused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httperr.CodeOf(translateCreateError(tt.err)))
		})
	}

	assert.ErrorIs(t, translateCreateError(errors.New("connection reset")), domain.ErrStorage)
}

func TestRetrySerialization(t *testing.T) {
	t.Run("second attempt classifies the conflict", func(t *testing.T) {
		calls := 0
		err := retrySerialization(func() error {
			calls++
			if calls == 1 {
				return pgErr(pgerrcode.SerializationFailure, "")
			}
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		})
		require.Equal(t, 2, calls)
		assert.Equal(t, httperr.CodeSlotTaken, httperr.CodeOf(translateCreateError(err)))
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		calls := 0
		err := retrySerialization(func() error {
			calls++
			return pgErr(pgerrcode.UniqueViolation, barberSlotIndex)
		})
		assert.Equal(t, 1, calls)
		assert.Equal(t, httperr.CodeSlotTaken, httperr.CodeOf(translateCreateError(err)))
	})

	t.Run("success is not retried", func(t *testing.T) {
		calls := 0
		require.NoError(t, retrySerialization(func() error {
			calls++
			return nil
		}))
		assert.Equal(t, 1, calls)
	})
}
