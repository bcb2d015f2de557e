package otp

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/provider"
)

// New returns the provider named by cfg.Provider.
func New(cfg *config.OTP, logger *slog.Logger) (provider.OTP, error) {
	switch cfg.Provider {
	case config.OTPProviderTwoFactor:
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("OTP_API_KEY is required for provider %q", cfg.Provider)
		}
		return NewTwoFactor(cfg, logger), nil
	case config.OTPProviderMock:
		return NewMock(cfg.MockCode, logger), nil
	default:
		return nil, fmt.Errorf("unknown otp provider %q", cfg.Provider)
	}
}
