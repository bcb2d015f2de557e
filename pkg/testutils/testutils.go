// Package testutils opens migrated test databases and seeds common rows.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/farmledger/infra"
	"github.com/amirasaad/farmledger/internal/dbtest"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/domain/user"
	"github.com/amirasaad/farmledger/pkg/repository"
	croprepo "github.com/amirasaad/farmledger/pkg/repository/crop"
	userrepo "github.com/amirasaad/farmledger/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLiteUoW returns a unit of work over a freshly migrated in-memory
// SQLite database.
func NewSQLiteUoW(t testing.TB) (*infra.UoW, *gorm.DB) {
	t.Helper()
	db := dbtest.NewSQLite(t)
	require.NoError(t, infra.AutoMigrate(db))
	return infra.NewUoW(db), db
}

// NewPostgresUoW starts a Postgres container, applies the SQL migrations
// and returns a unit of work over it. The container is terminated on
// cleanup.
func NewPostgresUoW(t *testing.T) (*infra.UoW, *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	pg, err := tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.MigrateUp(db, Logger()))
	return infra.NewUoW(db), db
}

// SeedUser creates a farmer with phone.
func SeedUser(t testing.TB, uow repository.UnitOfWork, phone string) *user.User {
	t.Helper()
	u, err := user.New(phone)
	require.NoError(t, err)
	repo, err := repository.Get[userrepo.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// SeedCrop creates an Active one-bigha crop for userID.
func SeedCrop(
	t testing.TB,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	name string,
	season crop.Season,
	year int,
) *crop.Crop {
	t.Helper()
	c := crop.New(userID)
	c.CropName = name
	c.Season = season
	c.Year = year
	c.Area = 1
	c.Normalize(time.Now().UTC())
	require.NoError(t, c.Validate())
	repo, err := repository.Get[croprepo.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}
