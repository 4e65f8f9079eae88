package testutils

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/brokerage/infra"
	infrarepo "github.com/amirasaad/brokerage/infra/repository"
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/domain/customer"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a file-backed sqlite database in a temp dir with every
// table migrated. A single connection makes each transaction exclusive, so
// concurrent tests observe the same serialization a row lock gives on postgres.
// sqlite keeps numeric columns as REAL, so exact-decimal checks belong in the
// integration tests on NewPostgresDB.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "ledger.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(infrarepo.Models()...))
	return db
}

// NewSQLiteUoW returns a unit of work over a fresh sqlite database.
func NewSQLiteUoW(t *testing.T) (*infrarepo.UoW, *gorm.DB) {
	t.Helper()
	db := NewSQLiteDB(t)
	return infrarepo.NewUoW(db), db
}

// SeedAccount creates a customer account holding the given balance.
func SeedAccount(
	t *testing.T,
	uow *infrarepo.UoW,
	customerID uuid.UUID,
	currency money.Code,
	balance string,
) *account.Account {
	t.Helper()
	ctx := context.Background()
	repo, err := uow.AccountRepository()
	require.NoError(t, err)
	acc, err := repo.GetOrCreate(ctx, customerID, currency)
	require.NoError(t, err)
	amount := decimal.RequireFromString(balance)
	if amount.IsZero() {
		return acc
	}
	acc, err = repo.ApplyDelta(ctx, acc.ID, account.Credit(amount))
	require.NoError(t, err)
	return acc
}

// SeedCustomer stores a customer with password "password123".
func SeedCustomer(t *testing.T, uow *infrarepo.UoW) *customer.Customer {
	t.Helper()
	c, err := customer.New(fmt.Sprintf("test_%s@example.com", uuid.NewString()[:8]), "Test", "password123")
	require.NoError(t, err)
	repo, err := uow.CustomerRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

// Balance reloads an account and returns its two counters as strings.
func Balance(t *testing.T, uow *infrarepo.UoW, id uuid.UUID) (balance, inReview string) {
	t.Helper()
	repo, err := uow.AccountRepository()
	require.NoError(t, err)
	acc, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	return acc.Balance.String(), acc.InReview.String()
}

// NewPostgresDB starts Postgres with Testcontainers, applies the SQL
// migrations and returns a connection. The container is terminated on cleanup.
func NewPostgresDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	return db
}

// NewRedisClient starts Redis with Testcontainers and returns a client for it.
func NewRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.0.5",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}
