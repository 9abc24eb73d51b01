package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/project-board/internal/auth"
	"github.com/BuzzLyutic/project-board/internal/model"
	"github.com/BuzzLyutic/project-board/internal/repo"
	"github.com/BuzzLyutic/project-board/internal/service"
	"github.com/BuzzLyutic/project-board/internal/validate"
	"github.com/BuzzLyutic/project-board/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	var filter model.TaskFilter
	if raw := q.Get("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.ValidationFailed(w, r, map[string]string{"project_id": "Project must be a valid project"})
			return
		}
		filter.ProjectID = &id
	}
	if status := q.Get("status"); status != "" {
		if _, ok := model.ValidStatuses[status]; !ok {
			respond.ValidationFailed(w, r, map[string]string{"status": "Status must be one of: pending, in_progress, completed"})
			return
		}
		filter.Status = &status
	}

	tasks, err := h.service.List(r.Context(), filter, page, perPage)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {

	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req validate.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	sess, _ := auth.FromContext(r.Context())
	task, err := h.service.Create(r.Context(), req, sess.UserID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/tasks/%d", task.ID))
	respond.Message(w, r, http.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	task, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

// Update принимает частичные изменения, в том числе одиночный
// {"status": ...} при перетаскивании карточки на доске
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req validate.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.Message(w, r, http.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.Message(w, r, http.StatusOK, "Task deleted successfully", nil)
}

func (h *TaskHandler) ByProject(w http.ResponseWriter, r *http.Request) {
	projectID, _ := strconv.ParseInt(chi.URLParam(r, "project_id"), 10, 64)

	tasks, err := h.service.ByProject(r.Context(), projectID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.Overdue(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) HighPriority(w http.ResponseWriter, r *http.Request) {
	projectID, errResp := optionalProjectID(r)
	if errResp != nil {
		respond.ValidationFailed(w, r, errResp)
		return
	}

	tasks, err := h.service.HighPriority(r.Context(), projectID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		respond.ValidationFailed(w, r, map[string]string{"q": "Search term is required"})
		return
	}

	projectID, errResp := optionalProjectID(r)
	if errResp != nil {
		respond.ValidationFailed(w, r, errResp)
		return
	}

	tasks, err := h.service.Search(r.Context(), term, projectID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	projectID, errResp := optionalProjectID(r)
	if errResp != nil {
		respond.ValidationFailed(w, r, errResp)
		return
	}

	stats, err := h.service.Stats(r.Context(), projectID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	handleErrors(w, r, h.logger, err)
}

func optionalProjectID(r *http.Request) (*int64, map[string]string) {
	raw := r.URL.Query().Get("project_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return nil, map[string]string{"project_id": "Project must be a valid project"}
	}
	return &id, nil
}

// Общая развязка ошибок сервисного слоя по HTTP статусам
func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.As(err, &vErr):
		respond.ValidationFailed(w, r, vErr.Fields)
	default:
		logger.Error("unhandled service error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
