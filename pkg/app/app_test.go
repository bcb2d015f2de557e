package app_test

import (
	"testing"
	"time"

	"github.com/amirasaad/farmledger/infra/provider/otp"
	"github.com/amirasaad/farmledger/pkg/app"
	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/testutils"
	"github.com/stretchr/testify/assert"
)

func TestNew_WiresEveryService(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	logger := testutils.Logger()
	cfg := &config.App{
		Auth:             &config.Auth{Jwt: &config.Jwt{Secret: "s", Expiry: time.Hour}},
		CropDeletePolicy: config.CropDeleteCascade,
	}

	a := app.New(&app.Deps{Uow: uow, OTP: otp.NewMock("1", logger), Logger: logger}, cfg)

	assert.Same(t, cfg, a.Config)
	assert.NotNil(t, a.AuthService)
	assert.NotNil(t, a.ProfileService)
	assert.NotNil(t, a.CropService)
	assert.NotNil(t, a.ExpenseService)
	assert.NotNil(t, a.IncomeService)
	assert.NotNil(t, a.ReportService)
}
