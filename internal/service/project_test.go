package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/project-board/internal/model"
	"github.com/BuzzLyutic/project-board/internal/repo"
	"github.com/BuzzLyutic/project-board/internal/validate"
)

func newProjectService(t *testing.T) (*ProjectService, *MockProjectRepository, *MockTaskRepository) {
	t.Helper()
	projects := new(MockProjectRepository)
	tasks := new(MockTaskRepository)
	return NewProjectService(projects, tasks), projects, tasks
}

func TestProjectService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        validate.ProjectRequest
		setupMock  func(*MockProjectRepository)
		wantFields []string
	}{
		{
			name: "successful creation",
			req: validate.ProjectRequest{
				ProjectName: strp("Launch"),
				StartDate:   strp("2026-01-01"),
				EndDate:     strp("2026-03-31"),
			},
			setupMock: func(m *MockProjectRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(c model.ProjectChanges) bool {
					return *c.ProjectName == "Launch" && *c.StartDate == "2026-01-01"
				}), int64(1)).Return(model.Project{ID: 1, ProjectName: "Launch"}, nil)
			},
		},
		{
			name:       "missing name",
			req:        validate.ProjectRequest{},
			setupMock:  func(*MockProjectRepository) {},
			wantFields: []string{"project_name"},
		},
		{
			name: "end before start",
			req: validate.ProjectRequest{
				ProjectName: strp("Launch"),
				StartDate:   strp("2026-03-01"),
				EndDate:     strp("2026-01-01"),
			},
			setupMock:  func(*MockProjectRepository) {},
			wantFields: []string{"end_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, projects, _ := newProjectService(t)
			tt.setupMock(projects)

			result, err := svc.Create(context.Background(), tt.req, 1)

			if len(tt.wantFields) > 0 {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				for _, field := range tt.wantFields {
					assert.Contains(t, vErr.Fields, field)
				}
			} else {
				require.NoError(t, err)
				assert.NotZero(t, result.ID)
			}

			projects.AssertExpectations(t)
		})
	}
}

func TestProjectService_GetLoadsTasks(t *testing.T) {
	svc, projects, tasks := newProjectService(t)
	projects.On("Get", mock.Anything, int64(1)).Return(model.Project{ID: 1, ProjectName: "Launch"}, nil)
	tasks.On("ByProject", mock.Anything, int64(1)).Return([]model.Task{
		{ID: 10, TaskName: "Write copy"},
	}, nil)

	p, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, p.Tasks, 1)
	assert.Equal(t, "Write copy", p.Tasks[0].TaskName)
}

func TestProjectService_GetMissing(t *testing.T) {
	svc, projects, tasks := newProjectService(t)
	projects.On("Get", mock.Anything, int64(99)).Return(model.Project{}, repo.ErrorNotFound)

	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, repo.ErrorNotFound)
	tasks.AssertNotCalled(t, "ByProject")
}

func TestProjectService_UpdateAcceptsInvertedDates(t *testing.T) {
	// Асимметрия create/update сохранена: на обновлении кросс-проверки нет
	svc, projects, _ := newProjectService(t)
	projects.On("Update", mock.Anything, int64(1), mock.Anything).
		Return(model.Project{ID: 1}, nil)

	_, err := svc.Update(context.Background(), 1, validate.ProjectRequest{
		StartDate: strp("2026-03-01"),
		EndDate:   strp("2026-01-01"),
	})

	require.NoError(t, err)
	projects.AssertExpectations(t)
}

func TestProjectService_Delete(t *testing.T) {
	svc, projects, _ := newProjectService(t)
	projects.On("Delete", mock.Anything, int64(5)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 5))
	projects.AssertExpectations(t)
}
