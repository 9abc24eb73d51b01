package repo

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/project-board/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
)

// ProjectRepository определяет интерфейс для работы с проектами
type ProjectRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Project, error)
	Get(ctx context.Context, id int64) (model.Project, error)
	Create(ctx context.Context, c model.ProjectChanges, userID int64) (model.Project, error)
	Update(ctx context.Context, id int64, c model.ProjectChanges) (model.Project, error)
	Delete(ctx context.Context, id int64) error
	Dropdown(ctx context.Context) ([]model.ProjectOption, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	List(ctx context.Context, filter model.TaskFilter, limit, offset int) ([]model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	WithProject(ctx context.Context, id int64) (model.Task, error)
	Create(ctx context.Context, c model.TaskChanges, userID int64) (model.Task, error)
	Update(ctx context.Context, id int64, c model.TaskChanges) (model.Task, error)
	Delete(ctx context.Context, id int64) error
	ByProject(ctx context.Context, projectID int64) ([]model.Task, error)
	Overdue(ctx context.Context) ([]model.Task, error)
	HighPriority(ctx context.Context, projectID *int64) ([]model.Task, error)
	Search(ctx context.Context, term string, projectID *int64) ([]model.Task, error)
	Stats(ctx context.Context, projectID *int64) (Stats, error)
}

// Stats is the aggregate counter set served by /tasks/stats.
type Stats struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	OverdueTasks   int     `json:"overdue_tasks"`
	HighPriority   int     `json:"high_priority"`
	Progress       float64 `json:"progress"`
}
