package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trellis-pm/trellis/internal/shared"
)

// Repository provides PostgreSQL backed persistence for users.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetUser fetches a user by id.
func (r *Repository) GetUser(ctx context.Context, id int64) (User, error) {
	const query = `SELECT id, name, email, role FROM users WHERE id = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// ListUsers returns all users ordered by id.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	const query = `SELECT id, name, email, role FROM users ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CreateUser inserts a user and returns it with the assigned id.
func (r *Repository) CreateUser(ctx context.Context, user User) (User, error) {
	const query = `
		INSERT INTO users (name, email, role)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, user.Name, user.Email, user.Role).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, shared.Duplicate("Email already registered")
		}
		return User{}, err
	}
	return user, nil
}

// UpdateUser persists changed fields of an existing user.
func (r *Repository) UpdateUser(ctx context.Context, user User) (User, error) {
	const query = `UPDATE users SET name = $2, email = $3, role = $4 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, shared.Duplicate("Email already registered")
		}
		return User{}, err
	}
	if tag.RowsAffected() == 0 {
		return User{}, shared.ErrNotFound
	}
	return user, nil
}

// DeleteUser removes a user by id.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
