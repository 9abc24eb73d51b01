package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/project-board/internal/model"
)

// Колонки проекта; счетчики задач считаются подзапросами при каждом чтении
const projectColumns = `
	p.id, p.project_name, COALESCE(p.description, ''),
	to_char(p.start_date, 'YYYY-MM-DD'), to_char(p.end_date, 'YYYY-MM-DD'),
	p.user_id,
	(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id),
	(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id AND t.status = 'completed'),
	p.created_at, p.updated_at`

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) List(ctx context.Context, limit, offset int) ([]model.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]model.Project, 0, limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) Get(ctx context.Context, id int64) (model.Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		WHERE p.id = $1
	`, id)

	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrorNotFound
	}
	return p, err
}

func (r *ProjectRepo) Create(ctx context.Context, c model.ProjectChanges, userID int64) (model.Project, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (project_name, description, start_date, end_date, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, derefString(c.ProjectName), textArg(c.Description), dateArg(c.StartDate), dateArg(c.EndDate), userID).Scan(&id)
	if err != nil {
		return model.Project{}, err
	}
	return r.Get(ctx, id)
}

// Update применяет только присутствующие поля; одинаковый повторный вызов
// дает одинаковое состояние
func (r *ProjectRepo) Update(ctx context.Context, id int64, c model.ProjectChanges) (model.Project, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if c.ProjectName != nil {
		add("project_name", *c.ProjectName)
	}
	if c.Description != nil {
		add("description", *c.Description)
	}
	if c.StartDate != nil {
		add("start_date", dateArg(c.StartDate))
	}
	if c.EndDate != nil {
		add("end_date", dateArg(c.EndDate))
	}

	cmd, err := r.pool.Exec(ctx,
		"UPDATE projects SET "+strings.Join(set, ", ")+" WHERE id = $1", args...)
	if err != nil {
		return model.Project{}, err
	}
	if cmd.RowsAffected() == 0 {
		return model.Project{}, ErrorNotFound
	}
	return r.Get(ctx, id)
}

// Delete удаляет проект; задачи уходят каскадом на уровне БД, одним запросом
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *ProjectRepo) Dropdown(ctx context.Context) ([]model.ProjectOption, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_name FROM projects ORDER BY project_name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make([]model.ProjectOption, 0)
	for rows.Next() {
		var o model.ProjectOption
		if err := rows.Scan(&o.ID, &o.ProjectName); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *ProjectRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

func scanProject(row pgx.Row) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.ProjectName, &p.Description,
		&p.StartDate, &p.EndDate,
		&p.UserID, &p.TaskCount, &p.CompletedTasks,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// dateArg превращает "очищенную" дату (пустую строку) в NULL
func dateArg(p *string) any {
	if p == nil || *p == "" {
		return nil
	}
	return *p
}

func textArg(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
