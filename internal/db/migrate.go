package db

import (
	"fmt" // Error wrapping

	"ecommerce_api/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging

	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table owned by the service, parents before children
func Models() []any {
	return []any{&domain.User{}, &domain.Product{}, &domain.Cart{}, &domain.CartItem{}, &domain.Order{}}
}

// Migrate performs automatic migration for the database schema
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
