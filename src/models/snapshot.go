package models

import "time"

// PortfolioSnapshot records the total value of a user's holdings on one day.
type PortfolioSnapshot struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Date       time.Time `db:"date"`
	TotalValue float64   `db:"total_value"`
	CreatedAt  time.Time `db:"created_at"`
}
