package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matiiroda/mg/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for every persisted model. The in-memory engine remains the authority at
// runtime; Postgres only has to hold what the engine reloads at startup.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Shared with integration tests so they
// migrate the same way the server does.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.Service{},
		&model.User{},
		&model.CajaSession{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Appointment{},
		&model.TicketConfig{},
		&model.SyncConfig{},
	)
}
