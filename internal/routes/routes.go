package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucReservation "github.com/BruksfildServices01/barber-booking/internal/usecase/reservation"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// Infra is the long-lived machinery owned by main and shut down there.
type Infra struct {
	Log      *zap.Logger
	Bugs     bugreport.Reporter
	Audit    *audit.Dispatcher
	Notifier *notify.Detached
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(infra.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	env := ucReservation.Env{
		Repo:  reservationRepo,
		Norm:  timezone.NewNormalizer(cfg.Timezone, cfg.SlotWidth()),
		Audit: infra.Audit,
		Log:   infra.Log.Named("reservation"),
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createUC := ucReservation.NewCreateReservation(env, infra.Notifier, cfg.MaxFutureBookings)
	editUC := ucReservation.NewEditReservation(env)
	cancelUC := ucReservation.NewCancelReservation(env)
	availabilityUC := ucReservation.NewGetAvailability(env)
	listChangesUC := ucReservation.NewListChanges(env, reservationRepo)
	workDaysUC := ucSchedule.NewWorkDays(reservationRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	reservationHandler := handlers.NewReservationHandler(createUC, editUC, cancelUC, infra.Bugs)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, infra.Bugs)
	changesHandler := handlers.NewChangesHandler(listChangesUC, infra.Bugs)
	workDaysHandler := handlers.NewWorkDaysHandler(workDaysUC, infra.Bugs)
	healthHandler := handlers.NewHealthHandler(db)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", healthHandler.Get)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))

	reservations := api.Group("/reservations")
	{
		reservations.POST("/create", reservationHandler.Create)
		reservations.POST("/edit", reservationHandler.Edit)
		reservations.POST("/cancel", reservationHandler.Cancel)
		reservations.GET("/:id/changes", changesHandler.List)
	}

	api.GET("/barbers/:id/availability", availabilityHandler.Get)

	me := api.Group("/me")
	{
		me.GET("/work-days", workDaysHandler.Get)
		me.PUT("/work-days", workDaysHandler.Update)
	}
}
