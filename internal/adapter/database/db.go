package database

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB pairs the connection pool with a statement builder using the
// placeholder format of the underlying driver.
type DB struct {
	*sql.DB
	QueryBuilder sq.StatementBuilderType
	Driver       string
}

func New(db *sql.DB, driver string) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question

	if driver == DriverPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:           db,
		QueryBuilder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		Driver:       driver,
	}
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}

	return false
}

func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return false
}
