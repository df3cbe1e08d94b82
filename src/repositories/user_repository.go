package repositories

import (
	"context"
	"fmt"

	"cryptoportfolio/src/models"
	"cryptoportfolio/src/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, name, email, age, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email, age)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		user.Name, user.Email, user.Age,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapError(err, "creating user")
}

func (r *userRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "listing users")
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepo) getOne(ctx context.Context, where string, arg interface{}, what string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+` = $1`, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err, what)
	}
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "id", id, fmt.Sprintf("user %d", id))
}

func (r *userRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	return r.getOne(ctx, "name", name, fmt.Sprintf("user named %q", name))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email", email, fmt.Sprintf("user with email %q", email))
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx,
		`UPDATE users SET name = $2, email = $3, age = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		user.ID, user.Name, user.Email, user.Age,
	).Scan(&user.UpdatedAt)
	return mapError(err, fmt.Sprintf("updating user %d", user.ID))
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err, fmt.Sprintf("deleting user %d", id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting user %d: %w", id, utils.ErrNotFound)
	}
	return nil
}
