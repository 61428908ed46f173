package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/db/dbtest"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

const testSecret = "handler-secret"

type reports struct {
	mu  sync.Mutex
	all []bugreport.Report
}

func (r *reports) Report(_ context.Context, rep bugreport.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, rep)
}

type discard struct{}

func (discard) Send(context.Context, notify.Message) error { return nil }

// brokenBarbers fails every barber lookup.
type brokenBarbers struct {
	domain.Repository
}

func (brokenBarbers) GetBarber(context.Context, uuid.UUID) domain.Lookup[models.Barber] {
	return domain.Failed[models.Barber](domain.StorageError("get barber", errors.New("connection refused")))
}

type server struct {
	t          *testing.T
	dispatcher *audit.Dispatcher
	db         *gorm.DB
	router     *gin.Engine
	bugs       *reports
	norm       timezone.Normalizer
	barber     models.Barber
	customer   models.Customer
	service    models.Service
}

func newServer(t *testing.T, wrap func(domain.Repository) domain.Repository) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := dbtest.Open(t)
	repo := repository.NewReservationGormRepository(gdb)
	norm := timezone.NewNormalizer(timezone.DefaultTimezone, 30*time.Minute)
	dispatcher := audit.NewDispatcher(audit.New(repo), zap.NewNop(), bugreport.Nop{})
	t.Cleanup(dispatcher.Close)
	detached := notify.NewDetached(discard{}, zap.NewNop(), time.Second)
	t.Cleanup(detached.Wait)

	s := &server{
		t:        t,
		db:       gdb,
		bugs:     &reports{},
		norm:     norm,
		barber:   models.Barber{Name: "Avi", Role: models.RoleBarber, IsActive: true},
		customer: models.Customer{Name: "Dana", Phone: "0501234567"},
		service:  models.Service{Name: "Haircut", DurationMin: 30, IsActive: true},
	}
	require.NoError(t, gdb.Create(&s.barber).Error)
	require.NoError(t, gdb.Create(&s.customer).Error)
	require.NoError(t, gdb.Create(&s.service).Error)

	start, end := "09:00", "18:00"
	require.NoError(t, gdb.Create(&models.WorkDay{
		BarberID: s.barber.ID, DayOfWeek: "monday", IsWorking: true,
		StartTime: &start, EndTime: &end,
	}).Error)

	var domainRepo domain.Repository = repo
	if wrap != nil {
		domainRepo = wrap(repo)
	}
	clock := time.Date(2025, 12, 1, 8, 0, 0, 0, norm.Location())
	env := usecase.Env{
		Repo:  domainRepo,
		Norm:  norm,
		Audit: dispatcher,
		Log:   zap.NewNop(),
		Now:   func() time.Time { return clock },
	}

	h := NewReservationHandler(
		usecase.NewCreateReservation(env, detached, 3),
		usecase.NewEditReservation(env),
		usecase.NewCancelReservation(env),
		s.bugs,
	)

	r := gin.New()
	api := r.Group("/api", middleware.AuthMiddleware(&config.Config{JWTSecret: testSecret}))
	api.POST("/reservations/create", h.Create)
	api.POST("/reservations/edit", h.Edit)
	api.POST("/reservations/cancel", h.Cancel)

	changes := NewChangesHandler(usecase.NewListChanges(env, repo), s.bugs)
	api.GET("/reservations/:id/changes", changes.List)
	availability := NewAvailabilityHandler(usecase.NewGetAvailability(env), s.bugs)
	api.GET("/barbers/:id/availability", availability.Get)
	workDays := NewWorkDaysHandler(schedule.NewWorkDays(repo), s.bugs)
	api.GET("/me/work-days", workDays.Get)
	api.PUT("/me/work-days", workDays.Update)

	s.router = r
	s.dispatcher = dispatcher
	return s
}

func (s *server) token(id uuid.UUID, typ string) string {
	s.t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id.String(),
		"type": typ,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(s.t, err)
	return tok
}

func (s *server) at(value string) int64 {
	s.t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, s.norm.Location())
	require.NoError(s.t, err)
	return ts.UnixMilli()
}

func (s *server) post(path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	return s.do(http.MethodPost, path, token, body)
}

func (s *server) get(path, token string) (*httptest.ResponseRecorder, map[string]any) {
	return s.do(http.MethodGet, path, token, nil)
}

func (s *server) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(s.t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func (s *server) createBody(when string) gin.H {
	return gin.H{
		"barberId":      s.barber.ID.String(),
		"serviceId":     s.service.ID.String(),
		"customerName":  s.customer.Name,
		"customerPhone": s.customer.Phone,
		"timeTimestamp": s.at(when),
	}
}

func (s *server) customerToken() string {
	return s.token(s.customer.ID, "customer")
}

func (s *server) book(when string) string {
	s.t.Helper()
	w, body := s.post("/api/reservations/create", s.customerToken(), s.createBody(when))
	require.Equal(s.t, http.StatusCreated, w.Code, body)
	return body["reservationId"].(string)
}

func TestCreate_Created(t *testing.T) {
	s := newServer(t, nil)

	w, body := s.post("/api/reservations/create", s.customerToken(), s.createBody("2025-12-08 10:00"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	_, err := uuid.Parse(body["reservationId"].(string))
	assert.NoError(t, err)
}

func TestCreate_TakenSlotIsConflict(t *testing.T) {
	s := newServer(t, nil)
	s.book("2025-12-08 10:00")

	other := models.Customer{Name: "Noa", Phone: "0527654321"}
	require.NoError(t, s.db.Create(&other).Error)
	body := s.createBody("2025-12-08 10:10")
	body["customerName"] = other.Name
	body["customerPhone"] = other.Phone

	w, out := s.post("/api/reservations/create", s.token(other.ID, "customer"), body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLOT_ALREADY_TAKEN", out["error"])
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["message"])
}

func TestCreate_BlockedCustomerGetsGenericError(t *testing.T) {
	s := newServer(t, nil)
	require.NoError(t, s.db.Create(&models.BlockedCustomer{
		BarberID: s.barber.ID, Phone: s.customer.Phone,
	}).Error)

	w, out := s.post("/api/reservations/create", s.customerToken(), s.createBody("2025-12-08 10:00"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "GENERIC_ERROR", out["error"])
}

func TestCreate_MalformedIDIsValidationError(t *testing.T) {
	s := newServer(t, nil)
	body := s.createBody("2025-12-08 10:00")
	body["barberId"] = "not-a-uuid"

	w, out := s.post("/api/reservations/create", s.customerToken(), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", out["error"])
	assert.Empty(t, s.bugs.all)
}

func TestCreate_WithoutTokenIsUnauthorized(t *testing.T) {
	s := newServer(t, nil)

	w, out := s.post("/api/reservations/create", "", s.createBody("2025-12-08 10:00"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", out["error"])
}

func TestCreate_StorageFailureIsReported(t *testing.T) {
	s := newServer(t, func(r domain.Repository) domain.Repository { return brokenBarbers{r} })

	w, out := s.post("/api/reservations/create", s.customerToken(), s.createBody("2025-12-08 10:00"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DATABASE_ERROR", out["error"])

	require.Len(t, s.bugs.all, 1)
	rep := s.bugs.all[0]
	assert.Equal(t, "create reservation", rep.Action)
	assert.Equal(t, bugreport.SeverityMedium, rep.Severity)
	assert.Equal(t, "/api/reservations/create", rep.Meta["route"])
	assert.Equal(t, s.customer.ID.String(), rep.Meta["caller_id"])
	assert.ErrorIs(t, rep.Err, domain.ErrStorage)
}

func TestEdit_StaleVersionIsConcurrencyConflict(t *testing.T) {
	s := newServer(t, nil)
	id := s.book("2025-12-08 10:00")

	edit := gin.H{
		"reservationId":   id,
		"barberId":        s.barber.ID.String(),
		"serviceId":       s.service.ID.String(),
		"timeTimestamp":   s.at("2025-12-08 11:00"),
		"expectedVersion": 1,
	}
	w, out := s.post("/api/reservations/edit", s.customerToken(), edit)
	require.Equal(t, http.StatusOK, w.Code, out)
	assert.Equal(t, float64(2), out["newVersion"])
	assert.Equal(t, id, out["reservationId"])

	edit["timeTimestamp"] = s.at("2025-12-08 12:00")
	w, out = s.post("/api/reservations/edit", s.customerToken(), edit)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONCURRENCY_CONFLICT", out["error"])
	assert.Equal(t, true, out["concurrencyConflict"])
}

func TestCancel_ReturnsReservationState(t *testing.T) {
	s := newServer(t, nil)
	id := s.book("2025-12-08 10:00")

	w, out := s.post("/api/reservations/cancel", s.customerToken(), gin.H{
		"reservationId":   id,
		"expectedVersion": 1,
		"reason":          "sick",
	})

	require.Equal(t, http.StatusOK, w.Code, out)
	assert.Equal(t, true, out["success"])
	res := out["reservation"].(map[string]any)
	assert.Equal(t, id, res["id"])
	assert.Equal(t, "cancelled", res["status"])
	assert.Equal(t, float64(2), res["version"])

	w, out = s.post("/api/reservations/cancel", s.customerToken(), gin.H{"reservationId": id})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONCURRENCY_CONFLICT", out["error"])
}

func TestCancel_OtherCustomerIsForbidden(t *testing.T) {
	s := newServer(t, nil)
	id := s.book("2025-12-08 10:00")

	w, out := s.post("/api/reservations/cancel", s.token(uuid.New(), "customer"), gin.H{"reservationId": id})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NOT_AUTHORIZED", out["error"])
}
