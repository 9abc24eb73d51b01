// Package validate checks and sanitizes incoming request payloads before they
// reach the repository layer. Every validator returns the validated field set
// together with a field→message error map; a field never appears in both.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/BuzzLyutic/project-board/internal/model"
)

// Errors maps a field name to a human-readable problem with it.
type Errors map[string]string

// Политики очистки: в именах остается только текст,
// в описаниях безопасная разметка.
var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

const maxNameLen = 255

// ProjectRequest is the decoded payload for project create/update. Pointer
// fields distinguish "absent" from "present"; JSON null counts as absent.
type ProjectRequest struct {
	ProjectName *string `json:"project_name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// TaskRequest is the decoded payload for task create/update.
type TaskRequest struct {
	TaskName    *string `json:"task_name"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
	ProjectID   *int64  `json:"project_id"`
}

// ProjectCreate validates a project creation payload.
func ProjectCreate(req ProjectRequest) (model.ProjectChanges, Errors) {
	errs := Errors{}
	var c model.ProjectChanges

	c.ProjectName = requireName(req.ProjectName, "project_name", "Project name", errs)
	c.Description = sanitizeDescription(req.Description)
	c.StartDate = checkDate(req.StartDate, "start_date", "Start date", errs)
	c.EndDate = checkDate(req.EndDate, "end_date", "End date", errs)

	// end ≥ start проверяется только при создании
	if c.StartDate != nil && c.EndDate != nil && *c.StartDate != "" && *c.EndDate != "" {
		if *c.EndDate < *c.StartDate {
			errs["end_date"] = "End date must be after or equal to start date"
			c.EndDate = nil
		}
	}

	return c, errs
}

// ProjectUpdate validates a partial project update. Absent fields are
// untouched; a present-but-empty name is an error. The end-after-start
// cross-check deliberately applies on create only.
func ProjectUpdate(req ProjectRequest) (model.ProjectChanges, Errors) {
	errs := Errors{}
	var c model.ProjectChanges

	if req.ProjectName != nil {
		c.ProjectName = requireName(req.ProjectName, "project_name", "Project name", errs)
	}
	c.Description = sanitizeDescription(req.Description)
	c.StartDate = checkDate(req.StartDate, "start_date", "Start date", errs)
	c.EndDate = checkDate(req.EndDate, "end_date", "End date", errs)

	return c, errs
}

// TaskCreate validates a task creation payload.
func TaskCreate(req TaskRequest) (model.TaskChanges, Errors) {
	errs := Errors{}
	var c model.TaskChanges

	c.TaskName = requireName(req.TaskName, "task_name", "Task name", errs)
	c.Description = sanitizeDescription(req.Description)
	c.Priority = checkEnum(req.Priority, "priority", model.ValidPriorities, errs)
	c.Status = checkEnum(req.Status, "status", model.ValidStatuses, errs)
	c.DueDate = checkDate(req.DueDate, "due_date", "Due date", errs)
	c.ProjectID = checkProjectID(req.ProjectID, errs)

	return c, errs
}

// TaskUpdate validates a partial task update.
func TaskUpdate(req TaskRequest) (model.TaskChanges, Errors) {
	errs := Errors{}
	var c model.TaskChanges

	if req.TaskName != nil {
		c.TaskName = requireName(req.TaskName, "task_name", "Task name", errs)
	}
	c.Description = sanitizeDescription(req.Description)
	c.Priority = checkEnum(req.Priority, "priority", model.ValidPriorities, errs)
	c.Status = checkEnum(req.Status, "status", model.ValidStatuses, errs)
	c.DueDate = checkDate(req.DueDate, "due_date", "Due date", errs)
	c.ProjectID = checkProjectID(req.ProjectID, errs)

	return c, errs
}

func requireName(raw *string, field, label string, errs Errors) *string {
	if raw == nil {
		errs[field] = label + " is required"
		return nil
	}
	name := strings.TrimSpace(*raw)
	switch {
	case name == "":
		errs[field] = label + " is required"
		return nil
	case len(*raw) > maxNameLen:
		errs[field] = label + fmt.Sprintf(" must not exceed %d characters", maxNameLen)
		return nil
	}
	clean := strings.TrimSpace(strictPolicy.Sanitize(name))
	if clean == "" {
		errs[field] = label + " is required"
		return nil
	}
	return &clean
}

func sanitizeDescription(raw *string) *string {
	if raw == nil {
		return nil
	}
	clean := ugcPolicy.Sanitize(*raw)
	return &clean
}

// checkDate verifies the YYYY-MM-DD format by round-tripping: the parsed
// value reformatted must equal the input. An empty string clears the field.
func checkDate(raw *string, field, label string, errs Errors) *string {
	if raw == nil {
		return nil
	}
	if *raw == "" {
		empty := ""
		return &empty
	}
	parsed, err := time.Parse(model.DateLayout, *raw)
	if err != nil || parsed.Format(model.DateLayout) != *raw {
		errs[field] = label + " must be a valid date (YYYY-MM-DD)"
		return nil
	}
	v := *raw
	return &v
}

func checkEnum(raw *string, field string, allowed map[string]struct{}, errs Errors) *string {
	if raw == nil {
		return nil
	}
	if _, ok := allowed[*raw]; !ok {
		errs[field] = enumMessages[field]
		return nil
	}
	v := *raw
	return &v
}

var enumMessages = map[string]string{
	"priority": "Priority must be one of: low, medium, high",
	"status":   "Status must be one of: pending, in_progress, completed",
}

func checkProjectID(raw *int64, errs Errors) *int64 {
	if raw == nil {
		return nil
	}
	if *raw < 0 {
		errs["project_id"] = "Project id must be a positive integer"
		return nil
	}
	v := *raw
	return &v
}
