package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first env file found for envFilePath (default ".env"),
// preferring the APP_ENV specific variant, then processes the environment.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, err := findEnvFile(dir, os.Getenv("APP_ENV"), envFilePath...)
	if err != nil {
		logger.Info("No environment file found, using process environment")
		return loadFromEnv()
	}

	logger.Info("Loading environment from file", "path", path)
	if err := godotenv.Load(path); err != nil {
		logger.Error("Failed to load environment file", "path", path, "error", err)
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default()
	logger.Info("App config loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db_driver", cfg.DB.Driver,
		"db", maskValue(cfg.DB.Url),
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
		"otp_provider", cfg.OTP.Provider,
		"otp_base_url", cfg.OTP.BaseURL,
		"otp_api_key", maskValue(cfg.OTP.ApiKey),
		"crop_delete_policy", cfg.CropDeletePolicy,
	)
	return &cfg, nil
}

// Validate rejects enum-valued settings outside their allowed set.
func (c *App) Validate() error {
	if c.Auth.Jwt.Secret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET must not be empty")
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DB.Driver)
	}
	switch c.OTP.Provider {
	case OTPProviderTwoFactor, OTPProviderMock:
	default:
		return fmt.Errorf("OTP_PROVIDER must be %q or %q, got %q", OTPProviderTwoFactor, OTPProviderMock, c.OTP.Provider)
	}
	switch c.CropDeletePolicy {
	case CropDeleteOrphan, CropDeleteCascade:
	default:
		return fmt.Errorf("CROP_DELETE_POLICY must be %q or %q, got %q", CropDeleteOrphan, CropDeleteCascade, c.CropDeletePolicy)
	}
	return nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
