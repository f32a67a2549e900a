// Package db opens the gorm connection used throughout the application
package db

import (
	"bitwise74/game-api/internal/model"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// New opens a database using driver ("sqlite" or "postgres") and dsn, then
// migrates every model
func New(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database, %w", driver, err)
	}

	if driver == "sqlite" && strings.Contains(dsn, "mode=memory") {
		// Every connection to a memory database sees its own copy unless
		// the pool is pinned to a single one
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

// NewMemory opens a private in-memory SQLite database called name
func NewMemory(name string) (*gorm.DB, error) {
	return New("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}
