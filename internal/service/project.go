package service

import (
	"context"

	"github.com/BuzzLyutic/project-board/internal/model"
	"github.com/BuzzLyutic/project-board/internal/repo"
	"github.com/BuzzLyutic/project-board/internal/validate"
)

type ProjectService struct {
	projects repo.ProjectRepository
	tasks    repo.TaskRepository
}

func NewProjectService(projects repo.ProjectRepository, tasks repo.TaskRepository) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks}
}

func (s *ProjectService) List(ctx context.Context, page, perPage int) ([]model.Project, error) {
	limit, offset := clampPage(page, perPage)
	return s.projects.List(ctx, limit, offset)
}

// Get возвращает проект вместе с его задачами
func (s *ProjectService) Get(ctx context.Context, id int64) (model.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return p, err
	}
	tasks, err := s.tasks.ByProject(ctx, id)
	if err != nil {
		return p, err
	}
	p.Tasks = tasks
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, req validate.ProjectRequest, userID int64) (model.Project, error) {
	changes, errs := validate.ProjectCreate(req)
	if len(errs) > 0 {
		return model.Project{}, validationFailed(errs)
	}
	return s.projects.Create(ctx, changes, userID)
}

func (s *ProjectService) Update(ctx context.Context, id int64, req validate.ProjectRequest) (model.Project, error) {
	changes, errs := validate.ProjectUpdate(req)
	if len(errs) > 0 {
		return model.Project{}, validationFailed(errs)
	}
	return s.projects.Update(ctx, id, changes)
}

// Delete удаляет проект; его задачи уходят каскадом в хранилище
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.projects.Delete(ctx, id)
}

func (s *ProjectService) Dropdown(ctx context.Context) ([]model.ProjectOption, error) {
	return s.projects.Dropdown(ctx)
}
