package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// batch runs independent lookups concurrently. Only critical lookups may
// fail the request; every other source degrades to "no constraint".
type batch struct {
	g   *errgroup.Group
	ctx context.Context
	log *zap.Logger
}

func newBatch(ctx context.Context, log *zap.Logger) *batch {
	g, gctx := errgroup.WithContext(ctx)
	return &batch{g: g, ctx: gctx, log: log}
}

func (b *batch) wait() error {
	return b.g.Wait()
}

func (b *batch) degraded(source string, err error) {
	b.log.Warn("lookup failed, source ignored",
		zap.String("source", source),
		zap.Error(err),
	)
}

// critical fails the whole batch when the lookup fails.
func critical[T any](
	b *batch,
	dst *domain.Lookup[T],
	fn func(ctx context.Context) domain.Lookup[T],
) {
	b.g.Go(func() error {
		*dst = fn(b.ctx)
		if dst.State() == domain.LookupFailed {
			return dst.Err()
		}
		return nil
	})
}

// single keeps a failed lookup as Failed so the rule consuming it can
// decide what "unknown" means.
func single[T any](
	b *batch,
	source string,
	dst *domain.Lookup[T],
	fn func(ctx context.Context) domain.Lookup[T],
) {
	b.g.Go(func() error {
		*dst = fn(b.ctx)
		if dst.State() == domain.LookupFailed {
			b.degraded(source, dst.Err())
		}
		return nil
	})
}

// optional replaces a failed result with the zero value.
func optional[T any](
	b *batch,
	source string,
	dst *T,
	fn func(ctx context.Context) (T, error),
) {
	b.g.Go(func() error {
		v, err := fn(b.ctx)
		if err != nil {
			b.degraded(source, err)
			var zero T
			*dst = zero
			return nil
		}
		*dst = v
		return nil
	})
}

// slotContext is everything needed to judge one candidate slot.
type slotContext struct {
	Barber      domain.Lookup[models.Barber]
	Settings    domain.Lookup[models.BarberBookingSettings]
	Constraints domain.Constraints
}

// fetchSlot queues the barber and availability lookups for a slot. The
// reservation being edited is passed as exclude so it never collides with
// itself.
func (b *batch) fetchSlot(
	repo domain.Repository,
	barberID uuid.UUID,
	slot timezone.Slot,
	exclude *uuid.UUID,
	sc *slotContext,
) {
	critical(b, &sc.Barber, func(ctx context.Context) domain.Lookup[models.Barber] {
		return repo.GetBarber(ctx, barberID)
	})
	single(b, "booking_settings", &sc.Settings, func(ctx context.Context) domain.Lookup[models.BarberBookingSettings] {
		return repo.GetBookingSettings(ctx, barberID)
	})
	single(b, "work_day", &sc.Constraints.WorkDay, func(ctx context.Context) domain.Lookup[models.WorkDay] {
		return repo.GetWorkDay(ctx, barberID, slot.Weekday)
	})
	optional(b, "barber_closures", &sc.Constraints.BarberClosures, func(ctx context.Context) ([]models.BarberClosure, error) {
		return repo.ListBarberClosures(ctx, barberID, slot.Date)
	})
	optional(b, "shop_closures", &sc.Constraints.ShopClosures, func(ctx context.Context) ([]models.ShopClosure, error) {
		return repo.ListShopClosures(ctx, slot.Date)
	})
	optional(b, "recurring", &sc.Constraints.Recurring, func(ctx context.Context) ([]models.RecurringAppointment, error) {
		return repo.ListRecurring(ctx, barberID, slot.Weekday)
	})
	optional(b, "breakouts", &sc.Constraints.Breakouts, func(ctx context.Context) ([]models.Breakout, error) {
		return repo.ListBreakouts(ctx, barberID)
	})
	optional(b, "slot_taken", &sc.Constraints.SlotTaken, func(ctx context.Context) (bool, error) {
		return repo.IsSlotTaken(ctx, barberID, slot.StartMs(), exclude)
	})
}

// evaluateSlot runs the customer policy first and then the availability
// rules in precedence order.
func evaluateSlot(
	caller domain.Caller,
	now time.Time,
	slot timezone.Slot,
	sc *slotContext,
) error {
	if err := domain.EvaluateBookingPolicy(caller, now, slot, sc.Settings.Ptr()); err != nil {
		return err
	}
	return domain.EvaluateRules(sc.Constraints, slot)
}
