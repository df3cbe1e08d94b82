package repositories

import (
	"errors"
	"fmt"

	"cryptoportfolio/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories translate.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

// mapError turns driver errors into the errors of the utils package so callers
// never depend on pgx.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, utils.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w: %s", what, utils.ErrConflict, pgErr.ConstraintName)
		case checkViolation:
			return fmt.Errorf("%s: %w", what, utils.ErrInsufficientHolding)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", what, utils.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
