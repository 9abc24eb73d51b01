package service

import (
	"context"

	"github.com/BuzzLyutic/project-board/internal/model"
	"github.com/BuzzLyutic/project-board/internal/repo"
	"github.com/BuzzLyutic/project-board/internal/validate"
)

type TaskService struct {
	tasks    repo.TaskRepository
	projects repo.ProjectRepository
}

func NewTaskService(tasks repo.TaskRepository, projects repo.ProjectRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

func (s *TaskService) Create(ctx context.Context, req validate.TaskRequest, userID int64) (model.Task, error) {
	changes, errs := validate.TaskCreate(req)
	if err := s.checkProject(ctx, changes.ProjectID, errs); err != nil {
		return model.Task{}, err
	}
	if len(errs) > 0 {
		return model.Task{}, validationFailed(errs)
	}

	// Политика значений по умолчанию: применяются только к отсутствующим полям
	if changes.Priority == nil {
		p := model.DefaultPriority
		changes.Priority = &p
	}
	if changes.Status == nil {
		st := model.DefaultStatus
		changes.Status = &st
	}

	return s.tasks.Create(ctx, changes, userID)
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.tasks.WithProject(ctx, id)
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter, page, perPage int) ([]model.Task, error) {
	limit, offset := clampPage(page, perPage)
	return s.tasks.List(ctx, filter, limit, offset)
}

func (s *TaskService) Update(ctx context.Context, id int64, req validate.TaskRequest) (model.Task, error) {
	changes, errs := validate.TaskUpdate(req)
	if err := s.checkProject(ctx, changes.ProjectID, errs); err != nil {
		return model.Task{}, err
	}
	if len(errs) > 0 {
		return model.Task{}, validationFailed(errs)
	}
	return s.tasks.Update(ctx, id, changes)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) ByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repo.ErrorNotFound
	}
	return s.tasks.ByProject(ctx, projectID)
}

func (s *TaskService) Overdue(ctx context.Context) ([]model.Task, error) {
	return s.tasks.Overdue(ctx)
}

func (s *TaskService) HighPriority(ctx context.Context, projectID *int64) ([]model.Task, error) {
	return s.tasks.HighPriority(ctx, projectID)
}

func (s *TaskService) Search(ctx context.Context, term string, projectID *int64) ([]model.Task, error) {
	return s.tasks.Search(ctx, term, projectID)
}

func (s *TaskService) Stats(ctx context.Context, projectID *int64) (repo.Stats, error) {
	return s.tasks.Stats(ctx, projectID)
}

// checkProject: ссылка на проект должна разрешаться в существующий проект.
// Ошибка попадает в ту же карту, что и полевые ошибки валидации.
func (s *TaskService) checkProject(ctx context.Context, projectID *int64, errs validate.Errors) error {
	if projectID == nil || *projectID == 0 {
		return nil
	}
	exists, err := s.projects.Exists(ctx, *projectID)
	if err != nil {
		return err
	}
	if !exists {
		errs["project_id"] = "Project does not exist"
	}
	return nil
}
