package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.String("dialect", db.Dialector.Name()))
	return db, nil
}

// slotIndexes back the booking invariant: one confirmed reservation per
// barber slot and per customer slot. Partial indexes work on both postgres
// and sqlite.
var slotIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_barber_slot
		ON reservations (barber_id, time_timestamp) WHERE status = 'confirmed'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_customer_slot
		ON reservations (customer_id, time_timestamp) WHERE status = 'confirmed'`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barber{},
		&models.BarberBookingSettings{},
		&models.BlockedCustomer{},
		&models.Customer{},
		&models.Service{},
		&models.WorkDay{},
		&models.RecurringAppointment{},
		&models.Breakout{},
		&models.BarberClosure{},
		&models.ShopClosure{},
		&models.Reservation{},
		&models.ReservationChange{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, stmt := range slotIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate slot index: %w", err)
		}
	}
	return nil
}
