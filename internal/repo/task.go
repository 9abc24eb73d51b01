package repo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/project-board/internal/model"
)

const taskColumns = `
	id, project_id, task_name, COALESCE(description, ''), priority, status,
	task_order, to_char(due_date, 'YYYY-MM-DD'), user_id, created_at, updated_at`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter, limit, offset int) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE ($1::bigint IS NULL OR project_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`, filter.ProjectID, filter.Status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows, limit)
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

// WithProject возвращает задачу вместе с именем ее проекта
func (r *TaskRepo) WithProject(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		SELECT t.id, t.project_id, t.task_name, COALESCE(t.description, ''),
		       t.priority, t.status, t.task_order,
		       to_char(t.due_date, 'YYYY-MM-DD'), t.user_id,
		       t.created_at, t.updated_at, p.project_name
		FROM tasks t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.id = $1
	`, id).Scan(
		&t.ID, &t.ProjectID, &t.TaskName, &t.Description,
		&t.Priority, &t.Status, &t.TaskOrder,
		&t.DueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt, &t.ProjectName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

// Create вставляет задачу в конец своей колонки: task_order = MAX + 1
func (r *TaskRepo) Create(ctx context.Context, c model.TaskChanges, userID int64) (model.Task, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (task_name, description, priority, status, due_date, project_id, user_id, task_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			(SELECT COALESCE(MAX(task_order) + 1, 0)
			 FROM tasks
			 WHERE status = $4 AND project_id IS NOT DISTINCT FROM $6::bigint))
		RETURNING id
	`, derefString(c.TaskName), textArg(c.Description),
		derefString(c.Priority), derefString(c.Status),
		dateArg(c.DueDate), projectArg(c.ProjectID), userID).Scan(&id)
	if err != nil {
		return model.Task{}, r.mapError(err)
	}
	return r.Get(ctx, id)
}

func (r *TaskRepo) Update(ctx context.Context, id int64, c model.TaskChanges) (model.Task, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	set := []string{"updated_at = now()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if c.TaskName != nil {
		add("task_name", *c.TaskName)
	}
	if c.Description != nil {
		add("description", *c.Description)
	}
	if c.Priority != nil {
		add("priority", *c.Priority)
	}
	if c.DueDate != nil {
		add("due_date", dateArg(c.DueDate))
	}
	if c.ProjectID != nil {
		add("project_id", projectArg(c.ProjectID))
	}
	if c.Status != nil {
		add("status", *c.Status)
		if *c.Status != current.Status {
			// Перенос в другую колонку ставит задачу в ее конец
			pos, err := r.nextOrder(ctx, c.ProjectID, current.ProjectID, *c.Status)
			if err != nil {
				return model.Task{}, err
			}
			add("task_order", pos)
		}
	}

	_, err = r.pool.Exec(ctx,
		"UPDATE tasks SET "+strings.Join(set, ", ")+" WHERE id = $1", args...)
	if err != nil {
		return model.Task{}, r.mapError(err)
	}
	return r.Get(ctx, id)
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) ByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows, 0)
}

// Overdue: срок прошел, задача не завершена
func (r *TaskRepo) Overdue(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE due_date IS NOT NULL
		  AND due_date < CURRENT_DATE
		  AND status <> 'completed'
		ORDER BY due_date ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows, 0)
}

func (r *TaskRepo) HighPriority(ctx context.Context, projectID *int64) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE priority = 'high'
		  AND status <> 'completed'
		  AND ($1::bigint IS NULL OR project_id = $1)
		ORDER BY due_date ASC NULLS LAST, id ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows, 0)
}

func (r *TaskRepo) Search(ctx context.Context, term string, projectID *int64) ([]model.Task, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE (task_name ILIKE $1 OR description ILIKE $1)
		  AND ($2::bigint IS NULL OR project_id = $2)
		ORDER BY created_at DESC, id DESC
	`, pattern, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows, 0)
}

func (r *TaskRepo) Stats(ctx context.Context, projectID *int64) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE due_date IS NOT NULL
				AND due_date < CURRENT_DATE AND status <> 'completed'),
			COUNT(*) FILTER (WHERE priority = 'high' AND status <> 'completed')
		FROM tasks
		WHERE ($1::bigint IS NULL OR project_id = $1)
	`, projectID).Scan(&s.TotalTasks, &s.CompletedTasks, &s.OverdueTasks, &s.HighPriority)
	if err != nil {
		return s, err
	}

	s.PendingTasks = s.TotalTasks - s.CompletedTasks
	if s.TotalTasks > 0 {
		progress := float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
		s.Progress = math.Round(progress*100) / 100
	}
	return s, nil
}

// nextOrder выбирает позицию в конце целевой колонки. Если проект тоже
// меняется этим же запросом, колонка считается в новом проекте.
func (r *TaskRepo) nextOrder(ctx context.Context, newProject, currentProject *int64, status string) (int, error) {
	project := currentProject
	if newProject != nil {
		project = newProject
	}
	var pos int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(task_order) + 1, 0)
		FROM tasks
		WHERE status = $1 AND project_id IS NOT DISTINCT FROM $2::bigint
	`, status, projectArg(project)).Scan(&pos)
	return pos, err
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" { // проект исчез под ногами
			return ErrorNotFound
		}
	}
	return err
}

func collectTasks(rows pgx.Rows, sizeHint int) ([]model.Task, error) {
	tasks := make([]model.Task, 0, sizeHint)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.TaskName, &t.Description, &t.Priority, &t.Status,
		&t.TaskOrder, &t.DueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// projectArg: 0 или nil означает "без проекта" и хранится как NULL
func projectArg(p *int64) any {
	if p == nil || *p == 0 {
		return nil
	}
	return *p
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
