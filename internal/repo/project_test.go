package repo

import (
    "context"
    "testing"

    "github.com/BuzzLyutic/project-board/internal/model"
)

func TestProjectRepo_CreateAndCounts(t *testing.T) {
    pool := setupTestDB(t)
    defer pool.Close()

    projects := NewProjectRepo(pool)
    tasks := NewTaskRepo(pool)
    ctx := context.Background()

    created, err := projects.Create(ctx, model.ProjectChanges{
        ProjectName: strp("Launch"),
        StartDate:   strp("2026-01-01"),
    }, 1)
    if err != nil {
        t.Fatal(err)
    }
    if created.ID == 0 {
        t.Error("expected non-zero ID")
    }
    if created.TaskCount != 0 {
        t.Errorf("fresh project has %d tasks", created.TaskCount)
    }

    for _, status := range []string{"pending", "completed"} {
        if _, err := tasks.Create(ctx, model.TaskChanges{
            TaskName:  strp("Task"),
            Priority:  strp("medium"),
            Status:    strp(status),
            ProjectID: &created.ID,
        }, 1); err != nil {
            t.Fatal(err)
        }
    }

    got, err := projects.Get(ctx, created.ID)
    if err != nil {
        t.Fatal(err)
    }
    if got.TaskCount != 2 || got.CompletedTasks != 1 {
        t.Errorf("expected task_count=2 completed=1, got %d/%d", got.TaskCount, got.CompletedTasks)
    }
}

func TestProjectRepo_DeleteCascades(t *testing.T) {
    pool := setupTestDB(t)
    defer pool.Close()

    projects := NewProjectRepo(pool)
    tasks := NewTaskRepo(pool)
    ctx := context.Background()

    p, err := projects.Create(ctx, model.ProjectChanges{ProjectName: strp("Doomed")}, 1)
    if err != nil {
        t.Fatal(err)
    }

    for i := 0; i < 3; i++ {
        if _, err := tasks.Create(ctx, model.TaskChanges{
            TaskName:  strp("Owned"),
            Priority:  strp("low"),
            Status:    strp("pending"),
            ProjectID: &p.ID,
        }, 1); err != nil {
            t.Fatal(err)
        }
    }

    if err := projects.Delete(ctx, p.ID); err != nil {
        t.Fatal(err)
    }

    left, err := tasks.ByProject(ctx, p.ID)
    if err != nil {
        t.Fatal(err)
    }
    if len(left) != 0 {
        t.Errorf("cascade delete left %d tasks behind", len(left))
    }
}

func TestProjectRepo_PartialUpdate(t *testing.T) {
    pool := setupTestDB(t)
    defer pool.Close()

    projects := NewProjectRepo(pool)
    ctx := context.Background()

    p, err := projects.Create(ctx, model.ProjectChanges{
        ProjectName: strp("Original"),
        Description: strp("keep me"),
    }, 1)
    if err != nil {
        t.Fatal(err)
    }

    updated, err := projects.Update(ctx, p.ID, model.ProjectChanges{ProjectName: strp("Renamed")})
    if err != nil {
        t.Fatal(err)
    }
    if updated.ProjectName != "Renamed" {
        t.Errorf("expected Renamed, got %s", updated.ProjectName)
    }
    if updated.Description != "keep me" {
        t.Errorf("partial update touched description: %q", updated.Description)
    }

    // Повторное применение того же обновления ничего не меняет
    again, err := projects.Update(ctx, p.ID, model.ProjectChanges{ProjectName: strp("Renamed")})
    if err != nil {
        t.Fatal(err)
    }
    if again.ProjectName != updated.ProjectName || again.Description != updated.Description {
        t.Error("repeated update changed state")
    }
}

func TestProjectRepo_GetMissing(t *testing.T) {
    pool := setupTestDB(t)
    defer pool.Close()

    if _, err := NewProjectRepo(pool).Get(context.Background(), 99999); err != ErrorNotFound {
        t.Errorf("expected ErrorNotFound, got %v", err)
    }
}
