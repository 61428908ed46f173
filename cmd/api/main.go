package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/reminder"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func main() {

	cfg := config.Load()
	zl := logger.New(cfg.Log, "barber-booking")
	defer func() { _ = zl.Sync() }()

	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// notifications degrade to logged failures
		zl.Warn("redis unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	bugs := bugreport.NewZapReporter(zl)
	repo := infraRepo.NewReservationGormRepository(db)
	auditDispatcher := audit.NewDispatcher(audit.New(repo), zl, bugs)

	queue := notify.NewRedisNotifier(rdb, notify.DefaultQueue)
	notifier := notify.NewDetached(
		notify.NewCooldown(rdb, cfg.NotifyCooldown, queue),
		zl,
		notify.DefaultDetachedTimeout,
	)

	job := reminder.NewJob(repo, queue, cfg.Reminder.Lead, timezone.Location(cfg.Timezone), zl, bugs)
	scheduler, err := reminder.Schedule(job, cfg.Reminder.Spec)
	if err != nil {
		zl.Fatal("reminder schedule", zap.Error(err))
	}
	scheduler.Start()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Log:      zl,
		Bugs:     bugs,
		Audit:    auditDispatcher,
		Notifier: notifier,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	termSig := <-sig
	zl.Info("graceful shutdown", zap.Any("signal", termSig))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	<-scheduler.Stop().Done()
	notifier.Wait()
	auditDispatcher.Close()

	zl.Info("shutdown finished")
}
