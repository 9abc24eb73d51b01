package model

import "time"

// Admissible enum values. Anything outside these sets is rejected at the
// validation boundary, never coerced.
var (
	ValidPriorities = map[string]struct{}{
		"low":    {},
		"medium": {},
		"high":   {},
	}
	ValidStatuses = map[string]struct{}{
		"pending":     {},
		"in_progress": {},
		"completed":   {},
	}
)

const (
	DefaultPriority = "medium"
	DefaultStatus   = "pending"

	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	PriorityHigh = "high"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

type Task struct {
	ID          int64     `json:"id"`
	ProjectID   *int64    `json:"project_id"`
	TaskName    string    `json:"task_name"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	TaskOrder   int       `json:"task_order"`
	DueDate     *string   `json:"due_date"`
	UserID      int64     `json:"user_id"`
	ProjectName *string   `json:"project_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOverdue reports whether the task is past due and not yet completed.
func (t Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	due, err := time.Parse(DateLayout, *t.DueDate)
	if err != nil {
		return false
	}
	y, m, d := today.Date()
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

type TaskFilter struct {
	ProjectID *int64
	Status    *string
}

// TaskChanges is the validated, sanitized field set produced by the
// validation layer. A nil pointer leaves the field untouched; a pointer
// to "" clears a nullable field.
type TaskChanges struct {
	TaskName    *string
	Description *string
	Priority    *string
	Status      *string
	DueDate     *string
	ProjectID   *int64
}
