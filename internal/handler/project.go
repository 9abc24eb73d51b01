package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/project-board/internal/auth"
	"github.com/BuzzLyutic/project-board/internal/service"
	"github.com/BuzzLyutic/project-board/internal/validate"
	"github.com/BuzzLyutic/project-board/pkg/respond"
)

type ProjectHandler struct {
	service *service.ProjectService
	logger  *zap.Logger
}

func NewProjectHandler(srv *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	projects, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, projects)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {

	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req validate.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	sess, _ := auth.FromContext(r.Context())
	project, err := h.service.Create(r.Context(), req, sess.UserID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/projects/%d", project.ID))
	respond.Message(w, r, http.StatusCreated, "Project created successfully", project)
}

// Get отдает проект вместе со списком его задач
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req validate.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	project, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.Message(w, r, http.StatusOK, "Project updated successfully", project)
}

// Delete удаляет проект и каскадом все его задачи
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.Message(w, r, http.StatusOK, "Project deleted successfully", nil)
}

// Dropdown отдает пары id и имя для селекта на доске
func (h *ProjectHandler) Dropdown(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Dropdown(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, options)
}

func (h *ProjectHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	handleErrors(w, r, h.logger, err)
}
