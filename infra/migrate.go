package infra

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/farmledger/infra/repository/crop"
	"github.com/amirasaad/farmledger/infra/repository/expense"
	"github.com/amirasaad/farmledger/infra/repository/income"
	"github.com/amirasaad/farmledger/infra/repository/profile"
	"github.com/amirasaad/farmledger/infra/repository/user"
	"github.com/amirasaad/farmledger/internal/migrations"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// Models lists every persisted model in creation order.
func Models() []any {
	return []any{
		&user.User{},
		&profile.FarmerProfile{},
		&crop.Crop{},
		&expense.Expense{},
		&income.Income{},
	}
}

// AutoMigrate creates or alters the tables from the GORM models. It backs
// SQLite deployments and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// MigrateUp applies the embedded SQL migrations to a postgres database.
func MigrateUp(db *gorm.DB, logger *slog.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	version, dirty, _ := m.Version()
	logger.Info("Database schema up to date", "version", version, "dirty", dirty)
	return nil
}
