package sprints

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trellis-pm/trellis/internal/shared"
)

// Repository provides PostgreSQL backed persistence for sprints.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetSprint fetches a sprint by id.
func (r *Repository) GetSprint(ctx context.Context, id int64) (Sprint, error) {
	const query = `SELECT id, name, start_date, end_date, project_id FROM sprints WHERE id = $1`

	var s Sprint
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sprint{}, shared.ErrNotFound
		}
		return Sprint{}, err
	}
	return s, nil
}

// ListByProject returns a project's sprints ordered by id.
func (r *Repository) ListByProject(ctx context.Context, projectID int64) ([]Sprint, error) {
	const query = `SELECT id, name, start_date, end_date, project_id FROM sprints WHERE project_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sprint
	for rows.Next() {
		var s Sprint
		if err := rows.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.ProjectID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateSprint inserts a sprint and returns it with the assigned id.
func (r *Repository) CreateSprint(ctx context.Context, sprint Sprint) (Sprint, error) {
	const query = `
		INSERT INTO sprints (name, start_date, end_date, project_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		sprint.Name, sprint.StartDate, sprint.EndDate, sprint.ProjectID,
	).Scan(&sprint.ID)
	if err != nil {
		return Sprint{}, err
	}
	return sprint, nil
}

// UpdateSprint persists changed fields of an existing sprint.
func (r *Repository) UpdateSprint(ctx context.Context, sprint Sprint) (Sprint, error) {
	const query = `UPDATE sprints SET name = $2, start_date = $3, end_date = $4 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, sprint.ID, sprint.Name, sprint.StartDate, sprint.EndDate)
	if err != nil {
		return Sprint{}, err
	}
	if tag.RowsAffected() == 0 {
		return Sprint{}, shared.ErrNotFound
	}
	return sprint, nil
}

// DeleteSprint removes a sprint by id.
func (r *Repository) DeleteSprint(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sprints WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
