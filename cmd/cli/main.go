package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/amirasaad/farmledger/infra/initializer"
	"github.com/amirasaad/farmledger/pkg/app"
	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain/user"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/repository"
	userrepo "github.com/amirasaad/farmledger/pkg/repository/user"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  report <phone> [year]   print the yearly profit report
  years <phone>           list the years with crops`

func main() {
	if len(os.Args) < 3 {
		fmt.Println(usage)
		os.Exit(2)
	}
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	a := app.New(deps, cfg)

	userID, err := lookup(ctx, deps.Uow, args[1])
	if err != nil {
		return err
	}

	switch args[0] {
	case "report":
		year := time.Now().UTC().Year()
		if len(args) > 2 {
			if year, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid year %q", args[2])
			}
		}
		report, err := a.ReportService.Yearly(ctx, userID, year)
		if err != nil {
			return err
		}
		printReport(w, report)
	case "years":
		years, err := a.ReportService.Years(ctx, userID)
		if err != nil {
			return err
		}
		if len(years) == 0 {
			fmt.Fprintln(w, "No crops recorded") //nolint:errcheck
			return nil
		}
		for _, y := range years {
			fmt.Fprintln(w, y) //nolint:errcheck
		}
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return nil
}

func lookup(ctx context.Context, uow repository.UnitOfWork, phone string) (uuid.UUID, error) {
	users, err := repository.Get[userrepo.Repository](uow)
	if err != nil {
		return uuid.Nil, err
	}
	u, err := users.GetByPhone(ctx, phone)
	if errors.Is(err, user.ErrUserNotFound) {
		return uuid.Nil, fmt.Errorf("no user with phone %s", phone)
	}
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}

func printReport(w io.Writer, r *dto.YearlyReport) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Farm report %d\n\n", r.Year) //nolint:errcheck

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Crop\tSeason\tArea\tIncome\tExpense\tProfit\t") //nolint:errcheck
	for _, c := range r.Crops {
		fmt.Fprintf(tw, "%s %s\t%s\t%.2f %s\t%.2f\t%.2f\t%s\t\n", //nolint:errcheck
			c.CropEmoji, c.CropName, c.Season, c.Area, c.AreaUnit,
			c.Income, c.Expense, profit(c.Profit))
	}
	tw.Flush() //nolint:errcheck

	s := r.Summary
	fmt.Fprintln(w) //nolint:errcheck
	bold.Fprintf(w, "Crops: %d  Area: %.2f\n", s.TotalCrops, s.TotalArea) //nolint:errcheck
	fmt.Fprintf(w, "Income %.2f  Expense %.2f  Net %s\n", //nolint:errcheck
		s.TotalIncome, s.TotalExpense, profit(s.NetProfit))
}

func profit(v float64) string {
	if v < 0 {
		return color.RedString("%.2f", v)
	}
	return color.GreenString("%.2f", v)
}
