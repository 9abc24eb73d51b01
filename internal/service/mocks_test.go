package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/project-board/internal/model"
	"github.com/BuzzLyutic/project-board/internal/repo"
)

// MockProjectRepository - мок репозитория проектов
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) List(ctx context.Context, limit, offset int) ([]model.Project, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) Get(ctx context.Context, id int64) (model.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, c model.ProjectChanges, userID int64) (model.Project, error) {
	args := m.Called(ctx, c, userID)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, id int64, c model.ProjectChanges) (model.Project, error) {
	args := m.Called(ctx, id, c)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Dropdown(ctx context.Context) ([]model.ProjectOption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ProjectOption), args.Error(1)
}

func (m *MockProjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(ctx context.Context, filter model.TaskFilter, limit, offset int) ([]model.Task, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) WithProject(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, c model.TaskChanges, userID int64) (model.Task, error) {
	args := m.Called(ctx, c, userID)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, id int64, c model.TaskChanges) (model.Task, error) {
	args := m.Called(ctx, id, c)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) ByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Overdue(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) HighPriority(ctx context.Context, projectID *int64) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Search(ctx context.Context, term string, projectID *int64) ([]model.Task, error) {
	args := m.Called(ctx, term, projectID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Stats(ctx context.Context, projectID *int64) (repo.Stats, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(repo.Stats), args.Error(1)
}
