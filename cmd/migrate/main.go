package main

import (
	"os" // Exit codes and env

	"ecommerce_api/internal/config" // Custom import path (Config)
	"ecommerce_api/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Structured logging
	"github.com/spf13/cobra"     // CLI commands
	"gorm.io/gorm"               // GORM ORM library
)

// openDB loads configuration and connects to the database
func openDB() (*gorm.DB, error) {
	cfg := config.LoadConfig() // Load configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return db.Open(cfg)
}

// migrate up
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDB()
		if err != nil {
			return err
		}
		return db.Migrate(gdb)
	},
}

// migrate seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo catalogue and an admin account (ADMIN_PASSWORD)",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDB()
		if err != nil {
			return err
		}
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		if err := db.Seed(gdb, os.Getenv("ADMIN_PASSWORD")); err != nil {
			return err
		}
		logrus.Info("Seeding completed.")
		return nil
	},
}

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Database schema tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	// Running without a subcommand migrates
	RunE: upCmd.RunE,
}

// Main entry point for migration
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	rootCmd.AddCommand(upCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}
}
