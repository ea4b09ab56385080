package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/database/migrations"
)

type Options struct {
	URL    string
	LogSQL bool
}

func NewDB(ctx context.Context, options Options) (*database.DB, error) {
	if options.URL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	sqlDB, err := otelsql.Open("pgx", options.URL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName("tasktracker"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		return nil, err
	}

	if options.LogSQL {
		driver := sqlDB.Driver()
		sqlDB.Close()

		logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
		sqlDB = sqldblogger.OpenDriver(options.URL, driver, zerologadapter.New(logger))
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := RunMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return database.New(sqlDB, database.DriverPostgres), nil
}

func RunMigrations(db *sql.DB) error {
	files, err := migrations.For("postgres")

	if err != nil {
		return err
	}

	source, err := iofs.New(files, ".")

	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})

	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, database.DriverPostgres, driver)

	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
