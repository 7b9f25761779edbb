package database

import (
	"fmt"
	"log/slog"

	"github.com/hugh/staffhub/internal/database/models"
	"github.com/hugh/staffhub/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.SSLMode == "disable" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
		// Unique-constraint violations become gorm.ErrDuplicatedKey so
		// services can translate lost races to Conflict.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Setup(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying db: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to database", "host", cfg.Host, "database", cfg.Name)

	return db, nil
}

// Setup registers the employee_teams join table so the association carries
// its assigned_at timestamp.
func Setup(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Employee{}, "Teams", &models.EmployeeTeam{}); err != nil {
		return fmt.Errorf("setting up employee_teams join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.Team{}, "Employees", &models.EmployeeTeam{}); err != nil {
		return fmt.Errorf("setting up employee_teams join table: %w", err)
	}
	return nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organisation{},
		&models.User{},
		&models.Employee{},
		&models.Team{},
		&models.EmployeeTeam{},
		&models.Log{},
	)
}
