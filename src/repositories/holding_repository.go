package repositories

import (
	"context"
	"fmt"

	"cryptoportfolio/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type HoldingRepository interface {
	Get(ctx context.Context, userID int64, asset string) (*models.Holding, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Holding, error)
	// Adjust adds delta, which may be negative, to the quantity of asset held by
	// userID, creating the holding on first use. It fails with
	// utils.ErrInsufficientHolding instead of storing a negative quantity.
	Adjust(ctx context.Context, userID int64, asset string, delta decimal.Decimal) (*models.Holding, error)
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

// Quantities travel as text so NUMERIC precision survives the round trip.
const holdingColumns = `id, user_id, asset, quantity::text, created_at, updated_at`

func scanHolding(row pgx.Row) (*models.Holding, error) {
	var h models.Holding
	var quantity string
	if err := row.Scan(&h.ID, &h.UserID, &h.Asset, &quantity, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	q, err := decimal.NewFromString(quantity)
	if err != nil {
		return nil, fmt.Errorf("holding %d: quantity %q: %w", h.ID, quantity, err)
	}
	h.Quantity = q
	return &h, nil
}

func (r *holdingRepo) Get(ctx context.Context, userID int64, asset string) (*models.Holding, error) {
	h, err := scanHolding(r.db.QueryRow(ctx,
		`SELECT `+holdingColumns+` FROM holdings WHERE user_id = $1 AND asset = $2`,
		userID, asset))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("holding %s of user %d", asset, userID))
	}
	return h, nil
}

func (r *holdingRepo) ListByUser(ctx context.Context, userID int64) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+holdingColumns+` FROM holdings WHERE user_id = $1 ORDER BY asset`,
		userID)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("holdings of user %d", userID))
	}
	defer rows.Close()

	holdings := []models.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, *h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) Adjust(ctx context.Context, userID int64, asset string, delta decimal.Decimal) (*models.Holding, error) {
	// A single statement keeps concurrent adjustments of the same holding from
	// losing updates; the quantity >= 0 check rejects over-withdrawals.
	h, err := scanHolding(r.db.QueryRow(ctx,
		`INSERT INTO holdings (user_id, asset, quantity)
		 VALUES ($1, $2, $3::numeric)
		 ON CONFLICT (user_id, asset) DO UPDATE SET
			quantity = holdings.quantity + EXCLUDED.quantity,
			updated_at = NOW()
		 RETURNING `+holdingColumns,
		userID, asset, delta.String()))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("adjusting holding %s of user %d", asset, userID))
	}
	return h, nil
}
