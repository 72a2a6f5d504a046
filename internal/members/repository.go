package members

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trellis-pm/trellis/internal/shared"
)

// Repository provides PostgreSQL backed persistence for memberships.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetMembership fetches a membership by its composite key.
func (r *Repository) GetMembership(ctx context.Context, projectID, userID int64) (Membership, error) {
	const query = `SELECT project_id, user_id, role FROM project_members WHERE project_id = $1 AND user_id = $2`

	var m Membership
	err := r.pool.QueryRow(ctx, query, projectID, userID).Scan(&m.ProjectID, &m.UserID, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Membership{}, shared.ErrNotFound
		}
		return Membership{}, err
	}
	return m, nil
}

// ListByProject returns a project's memberships with user details joined.
func (r *Repository) ListByProject(ctx context.Context, projectID int64) ([]Member, error) {
	const query = `
		SELECT pm.project_id, pm.user_id, pm.role, u.name, u.email
		FROM project_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id = $1
		ORDER BY pm.user_id`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CreateMembership inserts a membership. The composite primary key turns a
// repeated add into a duplicate failure.
func (r *Repository) CreateMembership(ctx context.Context, m Membership) (Membership, error) {
	const query = `INSERT INTO project_members (project_id, user_id, role) VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, m.ProjectID, m.UserID, m.Role); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Membership{}, shared.Duplicate("User is already a member of this project")
		}
		return Membership{}, err
	}
	return m, nil
}

// UpdateMembership persists a changed membership role.
func (r *Repository) UpdateMembership(ctx context.Context, m Membership) (Membership, error) {
	const query = `UPDATE project_members SET role = $3 WHERE project_id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, m.ProjectID, m.UserID, m.Role)
	if err != nil {
		return Membership{}, err
	}
	if tag.RowsAffected() == 0 {
		return Membership{}, shared.ErrNotFound
	}
	return m, nil
}

// DeleteMembership removes a membership by its composite key.
func (r *Repository) DeleteMembership(ctx context.Context, projectID, userID int64) error {
	const query = `DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
