package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cryptoportfolio/src/models"
	"cryptoportfolio/src/utils"

	"github.com/shopspring/decimal"
)

// memoryStore backs the in-memory repositories selected with the "memory"
// driver. It applies the same constraints as the Postgres schema: unique user
// names and emails, one holding per user and asset, non negative quantities and
// cascading deletes.
type memoryStore struct {
	mu sync.Mutex

	nextID    int64
	users     map[int64]models.User
	holdings  map[int64]map[string]models.Holding
	snapshots map[int64]map[string]models.PortfolioSnapshot
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     map[int64]models.User{},
		holdings:  map[int64]map[string]models.Holding{},
		snapshots: map[int64]map[string]models.PortfolioSnapshot{},
	}
}

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

// NewMemoryRepositories returns repositories sharing one in-memory store.
func NewMemoryRepositories() *Repositories {
	store := newMemoryStore()
	return &Repositories{
		Users:     &memoryUserRepo{store},
		Holdings:  &memoryHoldingRepo{store},
		Snapshots: &memorySnapshotRepo{store},
	}
}

type memoryUserRepo struct{ *memoryStore }

func (r *memoryUserRepo) checkUnique(user *models.User) error {
	for _, u := range r.users {
		if u.ID == user.ID {
			continue
		}
		if u.Name == user.Name {
			return fmt.Errorf("user named %q: %w: users_name_key", user.Name, utils.ErrConflict)
		}
		if u.Email == user.Email {
			return fmt.Errorf("user with email %q: %w: users_email_key", user.Email, utils.ErrConflict)
		}
	}
	return nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = 0
	if err := r.checkUnique(user); err != nil {
		return err
	}
	now := time.Now().UTC()
	user.ID = r.id()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memoryUserRepo) find(match func(models.User) bool, what string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", what, utils.ErrNotFound)
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id }, fmt.Sprintf("user %d", id))
}

func (r *memoryUserRepo) GetByName(_ context.Context, name string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Name == name }, fmt.Sprintf("user named %q", name))
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email }, fmt.Sprintf("user with email %q", email))
}

func (r *memoryUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("updating user %d: %w", user.ID, utils.ErrNotFound)
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("deleting user %d: %w", id, utils.ErrNotFound)
	}
	delete(r.users, id)
	delete(r.holdings, id)
	delete(r.snapshots, id)
	return nil
}

type memoryHoldingRepo struct{ *memoryStore }

func (r *memoryHoldingRepo) Get(_ context.Context, userID int64, asset string) (*models.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.holdings[userID][asset]
	if !ok {
		return nil, fmt.Errorf("holding %s of user %d: %w", asset, userID, utils.ErrNotFound)
	}
	return &h, nil
}

func (r *memoryHoldingRepo) ListByUser(_ context.Context, userID int64) ([]models.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	holdings := make([]models.Holding, 0, len(r.holdings[userID]))
	for _, h := range r.holdings[userID] {
		holdings = append(holdings, h)
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Asset < holdings[j].Asset })
	return holdings, nil
}

func (r *memoryHoldingRepo) Adjust(_ context.Context, userID int64, asset string, delta decimal.Decimal) (*models.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	what := fmt.Sprintf("adjusting holding %s of user %d", asset, userID)
	if _, ok := r.users[userID]; !ok {
		return nil, fmt.Errorf("%s: %w", what, utils.ErrNotFound)
	}

	now := time.Now().UTC()
	h, ok := r.holdings[userID][asset]
	if !ok {
		h = models.Holding{ID: r.id(), UserID: userID, Asset: asset, CreatedAt: now}
	}
	quantity := h.Quantity.Add(delta)
	if quantity.IsNegative() {
		return nil, fmt.Errorf("%s: %w", what, utils.ErrInsufficientHolding)
	}
	h.Quantity = quantity
	h.UpdatedAt = now

	if r.holdings[userID] == nil {
		r.holdings[userID] = map[string]models.Holding{}
	}
	r.holdings[userID][asset] = h
	return &h, nil
}

type memorySnapshotRepo struct{ *memoryStore }

func (r *memorySnapshotRepo) Create(_ context.Context, snapshot *models.PortfolioSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[snapshot.UserID]; !ok {
		return fmt.Errorf("snapshot of user %d: %w", snapshot.UserID, utils.ErrNotFound)
	}
	day := utils.FormatDate(snapshot.Date)
	if existing, ok := r.snapshots[snapshot.UserID][day]; ok {
		snapshot.ID = existing.ID
		snapshot.CreatedAt = existing.CreatedAt
	} else {
		snapshot.ID = r.id()
		snapshot.CreatedAt = time.Now().UTC()
	}

	if r.snapshots[snapshot.UserID] == nil {
		r.snapshots[snapshot.UserID] = map[string]models.PortfolioSnapshot{}
	}
	r.snapshots[snapshot.UserID][day] = *snapshot
	return nil
}

func (r *memorySnapshotRepo) ListByUser(_ context.Context, userID int64) ([]models.PortfolioSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshots := make([]models.PortfolioSnapshot, 0, len(r.snapshots[userID]))
	for _, s := range r.snapshots[userID] {
		snapshots = append(snapshots, s)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Date.Before(snapshots[j].Date) })
	return snapshots, nil
}
