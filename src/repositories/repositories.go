package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups the stores the services depend on.
type Repositories struct {
	Users     UserRepository
	Holdings  HoldingRepository
	Snapshots SnapshotRepository
}

// NewRepositories returns the Postgres backed repositories.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Holdings:  NewHoldingRepository(db),
		Snapshots: NewSnapshotRepository(db),
	}
}
