package model

import "time"

type Project struct {
	ID          int64   `json:"id"`
	ProjectName string  `json:"project_name"`
	Description string  `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	UserID      int64   `json:"user_id"`
	// Счетчики задач, заполняются запросом при листинге
	TaskCount      int       `json:"task_count"`
	CompletedTasks int       `json:"completed_tasks"`
	Tasks          []Task    `json:"tasks,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProjectOption is the minimal projection used by dropdown selects.
type ProjectOption struct {
	ID          int64  `json:"id"`
	ProjectName string `json:"project_name"`
}

type ProjectChanges struct {
	ProjectName *string
	Description *string
	StartDate   *string
	EndDate     *string
}
