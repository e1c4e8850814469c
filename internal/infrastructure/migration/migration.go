// Package migration manages the database schema, either from embedded SQL
// scripts or from the GORM models during development.
package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tally/internal/infrastructure/persistence/models"
	"tally/internal/shared/constants"
	"tally/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager chooses the migration strategy for the environment.
func NewManager(environment string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case constants.EnvDevelopment:
		strategy = NewGormAutoMigrateStrategy()
	default:
		strategy = NewGooseStrategy()
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// NewManagerWithStrategy creates a migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	models := AutoMigrateModels()
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	m.logger.Info("database migration completed")
	return nil
}

// AutoMigrateModels lists every persistence model the schema covers.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.AccountModel{},
		&models.SessionModel{},
		&models.UserModel{},
		&models.CategoryModel{},
		&models.ProductModel{},
		&models.BeverageModel{},
		&models.BeveragePricingModel{},
	}
}
