package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/database/migrations"
)

type Options struct {
	Path   string
	LogSQL bool
}

// DSN enables foreign keys on every pooled connection; a PRAGMA issued once
// would only affect the connection that ran it.
func DSN(path string) string {
	separator := "?"

	if strings.Contains(path, "?") {
		separator = "&"
	}

	return path + separator + "_foreign_keys=on&_busy_timeout=5000"
}

func NewDB(ctx context.Context, options Options) (*database.DB, error) {
	if options.Path == "" {
		return nil, errors.New("sqlite database path is required")
	}

	dsn := DSN(options.Path)

	sqlDB, err := otelsql.Open(database.DriverSQLite, dsn,
		otelsql.WithDBSystem("sqlite"),
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
		sqlDB = sqldblogger.OpenDriver(dsn, driver, zerologadapter.New(logger),
			sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
		)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := RunMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return database.New(sqlDB, database.DriverSQLite), nil
}

// RunMigrations applies the embedded schema. The migrate instance is not
// closed because that would close db too.
func RunMigrations(db *sql.DB) error {
	files, err := migrations.For("sqlite")

	if err != nil {
		return err
	}

	source, err := iofs.New(files, ".")

	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, database.DriverSQLite, driver)

	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
