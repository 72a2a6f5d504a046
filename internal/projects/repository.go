package projects

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trellis-pm/trellis/internal/shared"
)

const projectColumns = `id, name, description, is_public, owner_id, created_at, updated_at`

// Repository provides PostgreSQL backed persistence for projects.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetProject fetches a project by id.
func (r *Repository) GetProject(ctx context.Context, id int64) (Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, shared.ErrNotFound
		}
		return Project{}, err
	}
	return project, nil
}

// ListPublic returns all public projects ordered by id.
func (r *Repository) ListPublic(ctx context.Context) ([]Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE is_public ORDER BY id`)
}

// ListAll returns every project ordered by id.
func (r *Repository) ListAll(ctx context.Context) ([]Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
}

// ListVisibleTo returns the union of public projects and projects owned by
// the given user.
func (r *Repository) ListVisibleTo(ctx context.Context, userID int64) ([]Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE is_public OR owner_id = $1 ORDER BY id`,
		userID)
}

// CreateProject inserts a project and returns it with assigned fields.
func (r *Repository) CreateProject(ctx context.Context, project Project) (Project, error) {
	const query = `
		INSERT INTO projects (name, description, is_public, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		project.Name, project.Description, project.IsPublic, project.OwnerID,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return Project{}, err
	}
	return project, nil
}

// UpdateProject persists changed fields of an existing project.
func (r *Repository) UpdateProject(ctx context.Context, project Project) (Project, error) {
	const query = `
		UPDATE projects
		SET name = $2, description = $3, is_public = $4, owner_id = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		project.ID, project.Name, project.Description, project.IsPublic, project.OwnerID,
	).Scan(&project.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, shared.ErrNotFound
		}
		return Project{}, err
	}
	return project, nil
}

// DeleteProject removes a project by id. Sprints and memberships go with it
// through the schema's cascade rules.
func (r *Repository) DeleteProject(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, project)
	}
	return out, rows.Err()
}

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.IsPublic, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
