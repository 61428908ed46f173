package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/db/dbtest"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type sentMessages struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (s *sentMessages) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *sentMessages) all() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Message(nil), s.msgs...)
}

type harness struct {
	t    *testing.T
	db   *gorm.DB
	repo *repository.ReservationGormRepository
	norm timezone.Normalizer
	now  time.Time

	dispatcher *audit.Dispatcher
	sent       *sentMessages
	detached   *notify.Detached

	barber   models.Barber
	customer models.Customer
	service  models.Service
}

// newHarness seeds one barber working 09:00-18:00 Sunday to Thursday, off
// on Friday (explicit row) and Saturday (no row). The clock is Monday
// 2025-12-01 08:00 shop time.
func newHarness(t *testing.T) *harness {
	t.Helper()

	gdb := dbtest.Open(t)
	repo := repository.NewReservationGormRepository(gdb)
	norm := timezone.NewNormalizer(timezone.DefaultTimezone, 30*time.Minute)

	h := &harness{
		t:          t,
		db:         gdb,
		repo:       repo,
		norm:       norm,
		now:        time.Date(2025, 12, 1, 8, 0, 0, 0, norm.Location()),
		dispatcher: audit.NewDispatcher(audit.New(repo), zap.NewNop(), bugreport.Nop{}),
		sent:       &sentMessages{},
		barber:     models.Barber{Name: "Avi", Role: models.RoleBarber, IsActive: true},
		customer:   models.Customer{Name: "Dana", Phone: "0501234567"},
		service:    models.Service{Name: "Haircut", DurationMin: 30, IsActive: true},
	}
	h.detached = notify.NewDetached(h.sent, zap.NewNop(), time.Second)
	t.Cleanup(h.dispatcher.Close)

	require.NoError(t, gdb.Create(&h.barber).Error)
	require.NoError(t, gdb.Create(&h.customer).Error)
	require.NoError(t, gdb.Create(&h.service).Error)

	start, end := "09:00", "18:00"
	for _, day := range []string{"sunday", "monday", "tuesday", "wednesday", "thursday"} {
		require.NoError(t, gdb.Create(&models.WorkDay{
			BarberID: h.barber.ID, DayOfWeek: day, IsWorking: true,
			StartTime: &start, EndTime: &end,
		}).Error)
	}
	require.NoError(t, gdb.Create(&models.WorkDay{
		BarberID: h.barber.ID, DayOfWeek: "friday", IsWorking: false,
	}).Error)

	return h
}

func (h *harness) env() Env {
	return h.envWith(h.repo)
}

func (h *harness) envWith(repo domain.Repository) Env {
	return Env{
		Repo:  repo,
		Norm:  h.norm,
		Audit: h.dispatcher,
		Log:   zap.NewNop(),
		Now:   func() time.Time { return h.now },
	}
}

func (h *harness) create() *CreateReservation {
	return NewCreateReservation(h.env(), h.detached, 3)
}

func (h *harness) asCustomer() domain.Caller {
	return domain.Caller{ID: h.customer.ID, Type: domain.CallerCustomer}
}

func (h *harness) asBarber() domain.Caller {
	return domain.Caller{ID: h.barber.ID, Type: domain.CallerBarber}
}

// at returns the unix ms of a shop-time "YYYY-MM-DD HH:MM".
func (h *harness) at(value string) int64 {
	h.t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, h.norm.Location())
	require.NoError(h.t, err)
	return ts.UnixMilli()
}

func (h *harness) createInput(when string) CreateInput {
	return CreateInput{
		Caller:        h.asCustomer(),
		BarberID:      h.barber.ID,
		ServiceID:     h.service.ID,
		CustomerName:  h.customer.Name,
		CustomerPhone: h.customer.Phone,
		TimeTimestamp: h.at(when),
	}
}

func (h *harness) book(when string) uuid.UUID {
	h.t.Helper()
	out, err := h.create().Execute(context.Background(), h.createInput(when))
	require.NoError(h.t, err)
	return out.ReservationID
}

func (h *harness) reservation(id uuid.UUID) models.Reservation {
	h.t.Helper()
	l := h.repo.GetReservation(context.Background(), id)
	require.Equal(h.t, domain.LookupFound, l.State())
	return l.Value()
}

func (h *harness) otherCustomer() models.Customer {
	h.t.Helper()
	c := models.Customer{Name: "Noa", Phone: "0527654321"}
	require.NoError(h.t, h.db.Create(&c).Error)
	return c
}

func (h *harness) confirmedCount() int64 {
	var n int64
	require.NoError(h.t, h.db.Model(&models.Reservation{}).
		Where("status = ?", models.ReservationConfirmed).Count(&n).Error)
	return n
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected business error, got %v", err)
	assert.Equal(t, code, be.Code)
}

func intp(v int) *int { return &v }

// flakyRepo fails selected lookups of the real repository.
type flakyRepo struct {
	domain.Repository
	failShopClosures bool
	failBarber       bool
	failWorkDay      bool
}

var errFlaky = errors.New("connection reset")

func (f flakyRepo) ListShopClosures(ctx context.Context, date string) ([]models.ShopClosure, error) {
	if f.failShopClosures {
		return nil, domain.StorageError("list shop closures", errFlaky)
	}
	return f.Repository.ListShopClosures(ctx, date)
}

func (f flakyRepo) GetBarber(ctx context.Context, id uuid.UUID) domain.Lookup[models.Barber] {
	if f.failBarber {
		return domain.Failed[models.Barber](domain.StorageError("get barber", errFlaky))
	}
	return f.Repository.GetBarber(ctx, id)
}

func (f flakyRepo) GetWorkDay(ctx context.Context, barberID uuid.UUID, day string) domain.Lookup[models.WorkDay] {
	if f.failWorkDay {
		return domain.Failed[models.WorkDay](domain.StorageError("get work day", errFlaky))
	}
	return f.Repository.GetWorkDay(ctx, barberID, day)
}
