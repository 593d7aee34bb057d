// Package postgres implements the mapping storage on top of PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iVbk/khmerlink/internal/errs"
	"github.com/iVbk/khmerlink/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// MappingRepository stores slug mappings in the mapping table.
type MappingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMappingRepository creates a repository over an open database handle.
func NewMappingRepository(db *sql.DB, logger *zap.Logger) (*MappingRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: *sql.DB", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &MappingRepository{db: db, logger: logger}, nil
}

// Create inserts a new mapping record after trimming both inputs.
// A unique violation on the slug maps to ErrAlreadyExists.
func (mr *MappingRepository) Create(ctx context.Context, slug, destination string) error {
	slug = strings.TrimSpace(slug)
	destination = strings.TrimSpace(destination)

	if slug == "" {
		return fmt.Errorf("%w: empty slug", errs.ErrInvalidRequest)
	}

	const q = `
		INSERT INTO mapping
			(id, slug, destination)
		VALUES
			($1, $2, $3)
	`

	link := models.NewLink(slug, destination)

	_, err := mr.db.ExecContext(ctx, q, link.ID, link.Slug, link.Destination)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// return ErrAlreadyExists if the slug is taken
			if pgErr.Code == pgerrcode.UniqueViolation {
				return fmt.Errorf("%s: %w", slug, errs.ErrAlreadyExists)
			}
			return fmt.Errorf("save mapping with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return fmt.Errorf("save mapping with query (%s): %w", formatQuery(q), err)
	}

	return nil
}

// Resolve retrieves the destination for a slug.
// If the slug is unknown, ErrNotFound is returned.
func (mr *MappingRepository) Resolve(ctx context.Context, slug models.Slug) (models.Destination, error) {
	const q = `
		SELECT
			destination
		FROM
			mapping
		WHERE
			slug = $1
	`

	var destination models.Destination
	err := mr.db.QueryRowContext(ctx, q, slug).Scan(&destination)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", slug, errs.ErrNotFound)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return "", fmt.Errorf("retrieve mapping with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return "", fmt.Errorf("retrieve mapping with query (%s): %w", formatQuery(q), err)
	}

	return destination, nil
}

// All retrieves the complete mapping table.
func (mr *MappingRepository) All(ctx context.Context) (models.MappingTable, error) {
	const q = `
		SELECT
			slug, destination
		FROM
			mapping
	`

	rows, err := mr.db.QueryContext(ctx, q)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, fmt.Errorf("retrieve mappings with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return nil, fmt.Errorf("retrieve mappings with query (%s): %w", formatQuery(q), err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			mr.logger.Error("close rows", zap.Error(err))
		}
	}()

	table := make(models.MappingTable)
	for rows.Next() {
		var (
			slug        models.Slug
			destination models.Destination
		)
		if err = rows.Scan(&slug, &destination); err != nil {
			return nil, fmt.Errorf("retrieve mappings with query (%s): %w", formatQuery(q), err)
		}
		table[slug] = destination
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("retrieve mappings with query (%s): %w", formatQuery(q), err)
	}

	return table, nil
}

// Ping verifies the connection to the database is alive.
func (mr *MappingRepository) Ping(ctx context.Context) error {
	return mr.db.PingContext(ctx)
}

// formatQuery removes tabs and replaces newlines with spaces in the given query string.
func formatQuery(q string) string {
	return strings.ReplaceAll(strings.ReplaceAll(q, "\t", ""), "\n", " ")
}

// formatPgError formats a PgError into a human-friendly error message.
func formatPgError(err *pgconn.PgError) error {
	return fmt.Errorf("SQL Error: %s, Detail: %s, Where: %s, Code: %s, SQLState: %s",
		err.Message,
		err.Detail,
		err.Where,
		err.Code,
		err.SQLState(),
	)
}
