// Package report builds the yearly per-crop and per-season financial report.
package report

import (
	"context"
	"log/slog"
	"sort"

	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/metrics"
	"github.com/amirasaad/farmledger/pkg/repository"
	croprepo "github.com/amirasaad/farmledger/pkg/repository/crop"
	expenserepo "github.com/amirasaad/farmledger/pkg/repository/expense"
	incomerepo "github.com/amirasaad/farmledger/pkg/repository/income"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Service aggregates crops and their transactions.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a report Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

type totals map[uuid.UUID]decimal.Decimal

// Yearly builds the report for userID and year. Failing to read the
// transaction sums is not an error: the crops are reported with zero
// financials and the failure is logged.
func (s *Service) Yearly(
	ctx context.Context,
	userID uuid.UUID,
	year int,
) (*dto.YearlyReport, error) {
	log := s.logger.With("context", "Yearly", "userID", userID, "year", year)

	var crops []*crop.Crop
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[croprepo.Repository](uow)
		if err != nil {
			return err
		}
		crops, err = repo.ListByUserYear(ctx, userID, year)
		return err
	})
	if err != nil {
		log.Error("Failed to load crops", "error", err)
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(crops))
	for _, c := range crops {
		ids = append(ids, c.ID)
	}

	expenses, incomes, err := s.sums(ctx, userID, ids)
	if err != nil {
		log.Warn("Transaction sums unavailable, reporting zero financials", "error", err)
		metrics.ReportDegraded.Inc()
		expenses, incomes = totals{}, totals{}
	}

	metrics.ReportsGenerated.Inc()
	return Build(year, crops, expenses, incomes), nil
}

// sums reads the per-crop expense and income totals concurrently. The
// queries run on the pool, outside any transaction.
func (s *Service) sums(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) (expenses, incomes totals, err error) {
	if len(ids) == 0 {
		return totals{}, totals{}, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		repo, err := repository.Get[expenserepo.Repository](s.uow)
		if err != nil {
			return err
		}
		expenses, err = repo.SumByCrop(gctx, userID, ids)
		return err
	})
	g.Go(func() error {
		repo, err := repository.Get[incomerepo.Repository](s.uow)
		if err != nil {
			return err
		}
		incomes, err = repo.SumByCrop(gctx, userID, ids)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}
	return expenses, incomes, nil
}

type seasonAcc struct {
	income, expense, area decimal.Decimal
	crops                 int
}

// Build folds crops and their per-crop totals into a report. Crops missing
// from a totals map count as zero. Money is accumulated in decimal so season
// and summary figures are exact sums of the crop lines.
func Build(year int, crops []*crop.Crop, expenses, incomes map[uuid.UUID]decimal.Decimal) *dto.YearlyReport {
	report := &dto.YearlyReport{
		Year:            year,
		Crops:           make([]dto.CropReport, 0, len(crops)),
		SeasonBreakdown: make(map[string]dto.SeasonTotals),
	}

	seasons := make(map[crop.Season]*seasonAcc)
	var totalIncome, totalExpense, totalArea decimal.Decimal

	for _, c := range crops {
		in := incomes[c.ID]
		out := expenses[c.ID]
		area := decimal.NewFromFloat(c.Area)

		report.Crops = append(report.Crops, dto.CropReport{
			ID:         c.ID,
			CropName:   c.CropName,
			CropType:   c.CropType,
			BatchLabel: c.BatchLabel,
			CropEmoji:  c.CropEmoji,
			Season:     string(c.Season),
			Status:     string(c.Status),
			Area:       c.Area,
			AreaUnit:   string(c.AreaUnit),
			Income:     money(in),
			Expense:    money(out),
			Profit:     money(in.Sub(out)),
		})

		acc, ok := seasons[c.Season]
		if !ok {
			acc = &seasonAcc{}
			seasons[c.Season] = acc
		}
		acc.income = acc.income.Add(in)
		acc.expense = acc.expense.Add(out)
		acc.area = acc.area.Add(area)
		acc.crops++

		totalIncome = totalIncome.Add(in)
		totalExpense = totalExpense.Add(out)
		totalArea = totalArea.Add(area)
	}

	for season, acc := range seasons {
		report.SeasonBreakdown[string(season)] = dto.SeasonTotals{
			Income:  money(acc.income),
			Expense: money(acc.expense),
			Profit:  money(acc.income.Sub(acc.expense)),
			Crops:   acc.crops,
			Area:    acc.area.InexactFloat64(),
		}
	}

	report.Summary = dto.ReportSummary{
		TotalIncome:  money(totalIncome),
		TotalExpense: money(totalExpense),
		NetProfit:    money(totalIncome.Sub(totalExpense)),
		TotalCrops:   len(crops),
		TotalArea:    totalArea.InexactFloat64(),
	}
	return report
}

// Years lists the years the user has crops in, most recent first.
func (s *Service) Years(
	ctx context.Context,
	userID uuid.UUID,
) (years []int, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[croprepo.Repository](uow)
		if err != nil {
			return err
		}
		years, err = repo.Years(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if years == nil {
		years = []int{}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
