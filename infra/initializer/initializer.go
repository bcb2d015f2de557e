package initializer

import (
	"fmt"
	"os"

	"github.com/amirasaad/farmledger/infra"
	"github.com/amirasaad/farmledger/infra/provider/otp"
	"github.com/amirasaad/farmledger/pkg/app"
	"github.com/amirasaad/farmledger/pkg/config"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(os.Stdout, cfg.Log)
	deps.Logger = logger

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}

	if cfg.DB.Migrate {
		switch cfg.DB.Driver {
		case config.DriverSQLite:
			err = infra.AutoMigrate(db)
		default:
			err = infra.MigrateUp(db, logger)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize unit of work
	deps.Uow = infra.NewUoW(db)

	deps.OTP, err = otp.New(cfg.OTP, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OTP provider: %w", err)
	}
	logger.Info("Dependencies ready",
		"db_driver", cfg.DB.Driver,
		"otp_provider", deps.OTP.Name(),
	)
	return
}
