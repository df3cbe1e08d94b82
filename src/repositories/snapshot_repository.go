package repositories

import (
	"context"
	"fmt"

	"cryptoportfolio/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.PortfolioSnapshot) error
	ListByUser(ctx context.Context, userID int64) ([]models.PortfolioSnapshot, error)
}

type snapshotRepo struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepo{db: db}
}

// Create stores snapshot, replacing the value of an earlier run on the same day.
func (r *snapshotRepo) Create(ctx context.Context, snapshot *models.PortfolioSnapshot) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO portfolio_snapshots (user_id, date, total_value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			total_value = EXCLUDED.total_value
		 RETURNING id, created_at`,
		snapshot.UserID, snapshot.Date, snapshot.TotalValue,
	).Scan(&snapshot.ID, &snapshot.CreatedAt)
	return mapError(err, fmt.Sprintf("snapshot of user %d", snapshot.UserID))
}

func (r *snapshotRepo) ListByUser(ctx context.Context, userID int64) ([]models.PortfolioSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, date, total_value, created_at
		 FROM portfolio_snapshots
		 WHERE user_id = $1
		 ORDER BY date`,
		userID)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("snapshots of user %d", userID))
	}
	defer rows.Close()

	snapshots := []models.PortfolioSnapshot{}
	for rows.Next() {
		var s models.PortfolioSnapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.TotalValue, &s.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
