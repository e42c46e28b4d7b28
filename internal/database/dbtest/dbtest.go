// Package dbtest starts a throwaway postgres container for package tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"postboard-go/internal/database"
	"postboard-go/internal/database/migrate"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var cfg database.Config

func startPostgresContainer(ctx context.Context) (func(context.Context) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "testpass"
		dbUser = "testuser"
	)

	dbContainer, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	cfg = database.Config{
		Host:     dbHost,
		Port:     dbPort.Port(),
		Database: dbName,
		Username: dbUser,
		Password: dbPwd,
		Schema:   "public",
	}

	log.Info().
		Str("host", dbHost).
		Str("port", dbPort.Port()).
		Msg("postgres container started successfully")

	return dbContainer.Terminate, nil
}

// Run starts the container, runs the tests and tears the container down.
// Use it from TestMain: os.Exit(dbtest.Run(m)).
func Run(m *testing.M) int {
	ctx := context.Background()

	teardown, err := startPostgresContainer(ctx)
	if err != nil {
		log.Fatal().
			Err(err).
			Msg("could not start postgres container")
	}

	code := m.Run()

	if teardown != nil {
		if err := teardown(ctx); err != nil {
			log.Error().
				Err(err).
				Msg("could not teardown postgres container")
		}
	}
	return code
}

// Config returns the connection settings of the running container
func Config() database.Config {
	return cfg
}

// Setup connects to the container and applies all migrations.
// The connection is closed when the test ends.
func Setup(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	require.NoError(t, migrate.RunMigrations(db.DB))

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// Truncate empties the given tables
func Truncate(t *testing.T, db *database.DB, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := db.Exec("TRUNCATE TABLE " + table + " CASCADE")
		require.NoError(t, err)
	}
}
