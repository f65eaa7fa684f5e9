// Package db opens the Postgres database that stores meals, profiles and the
// suggestion catalogue.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutrisnap/internal/config"
	applog "nutrisnap/internal/log"
	"nutrisnap/models"
)

var (
	ErrMissingURL = errors.New("db: database URL must not be empty")
	ErrNilHandle  = errors.New("db: database handle is nil")
)

// tables lists every model the service persists, in migration order.
var tables = []any{
	&models.Profile{},
	&models.Meal{},
	&models.MealSuggestion{},
}

// Initialize opens the database described by cfg and applies its pool limits.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrMissingURL
	}

	database, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("db: access pool: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	applog.Debug(context.Background(), "database pool configured",
		"maxIdle", cfg.MaxIdleConns,
		"maxOpen", cfg.MaxOpenConns,
		"connMaxLifetime", cfg.ConnMaxLifetime.String(),
	)
	return database, nil
}

// AutoMigrate creates or updates the profile, meal and suggestion tables.
func AutoMigrate(database *gorm.DB) error {
	if database == nil {
		return ErrNilHandle
	}
	if err := database.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}

// Configure opens and migrates the database.
func Configure(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := Initialize(cfg)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Ping checks that database answers within timeout.
func Ping(ctx context.Context, database *gorm.DB, timeout time.Duration) error {
	if database == nil {
		return ErrNilHandle
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("db: access pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db: ping: %w", err)
	}
	return nil
}
