// Package app wires the services from their dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/provider"
	"github.com/amirasaad/farmledger/pkg/repository"
	"github.com/amirasaad/farmledger/pkg/service/auth"
	"github.com/amirasaad/farmledger/pkg/service/crop"
	"github.com/amirasaad/farmledger/pkg/service/expense"
	"github.com/amirasaad/farmledger/pkg/service/income"
	"github.com/amirasaad/farmledger/pkg/service/profile"
	"github.com/amirasaad/farmledger/pkg/service/report"
)

// Deps contains everything the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	OTP    provider.OTP
	Logger *slog.Logger
}

type App struct {
	Deps           *Deps
	Config         *config.App
	AuthService    *auth.Service
	ProfileService *profile.Service
	CropService    *crop.Service
	ExpenseService *expense.Service
	IncomeService  *income.Service
	ReportService  *report.Service
}

func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:           deps,
		Config:         cfg,
		AuthService:    auth.New(deps.Uow, deps.OTP, cfg.Auth.Jwt, deps.Logger),
		ProfileService: profile.New(deps.Uow, deps.Logger),
		CropService:    crop.New(deps.Uow, cfg.CropDeletePolicy, deps.Logger),
		ExpenseService: expense.New(deps.Uow, deps.Logger),
		IncomeService:  income.New(deps.Uow, deps.Logger),
		ReportService:  report.New(deps.Uow, deps.Logger),
	}
}
