package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the quantity of one asset owned by one user. Asset is the lower
// case symbol.
type Holding struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Asset     string          `db:"asset"`
	Quantity  decimal.Decimal `db:"quantity"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
