package db

import (
	"errors" // Error inspection
	"fmt"    // Error wrapping

	"ecommerce_api/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Decimal prices
	"github.com/sirupsen/logrus"    // Structured logging
	"golang.org/x/crypto/bcrypt"    // Password hashing
	"gorm.io/gorm"                  // GORM ORM library
)

// demoProducts is the starter catalogue inserted by Seed
var demoProducts = []domain.Product{
	{Name: "Canvas Tote", Description: "Heavy cotton shopping bag", Price: decimal.RequireFromString("14.90"), Stock: 120},
	{Name: "Ceramic Mug", Description: "350ml stoneware mug", Price: decimal.RequireFromString("9.50"), Stock: 300},
	{Name: "Desk Lamp", Description: "LED lamp with dimmer", Price: decimal.RequireFromString("39.00"), Stock: 40},
	{Name: "Notebook", Description: "A5 dotted, 160 pages", Price: decimal.RequireFromString("6.25"), Stock: 500},
	{Name: "Water Bottle", Description: "Insulated steel, 750ml", Price: decimal.RequireFromString("24.00"), Stock: 80},
}

// Seed inserts the demo catalogue and, when adminPassword is set, an admin account.
// Rows that already exist are left untouched.
func Seed(gdb *gorm.DB, adminPassword string) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		for _, p := range demoProducts {
			if err := tx.Where("name = ?", p.Name).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("seed product %q: %w", p.Name, err)
			}
		}
		if adminPassword == "" {
			return nil // No admin requested
		}
		var admin domain.User
		err := tx.Where("username = ?", "admin").First(&admin).Error
		if err == nil {
			return nil // Admin already present
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup admin: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		admin = domain.User{Username: "admin", Email: "admin@localhost", Password: string(hash), Role: domain.RoleAdmin}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		logrus.WithField("user_id", admin.ID).Info("Admin account created")
		return nil
	})
}
