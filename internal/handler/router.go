package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/project-board/internal/auth"
	"github.com/BuzzLyutic/project-board/pkg/respond"
)

// NewRouter собирает маршруты API и отдачу статики доски
func NewRouter(projects *ProjectHandler, tasks *TaskHandler, sessions *auth.Store, static fs.FS, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(api chi.Router) {
		// Чтение доступно любой аутентифицированной сессии
		api.Group(func(read chi.Router) {
			read.Use(sessions.RequireRead)

			read.Get("/session", sessionHandler)

			read.Get("/projects", projects.List)
			read.Get("/projects/{id:[0-9]+}", projects.Get)

			read.Get("/tasks", tasks.List)
			read.Get("/tasks/by-project/{project_id:[0-9]+}", tasks.ByProject)
			read.Get("/tasks/projects-dropdown", projects.Dropdown)
			read.Get("/tasks/overdue", tasks.Overdue)
			read.Get("/tasks/high-priority", tasks.HighPriority)
			read.Get("/tasks/search", tasks.Search)
			read.Get("/tasks/stats", tasks.Stats)
			read.Get("/tasks/{id:[0-9]+}", tasks.Get)
		})

		// Запись требует роли редактора и анти-CSRF токена
		api.Group(func(write chi.Router) {
			write.Use(sessions.RequireWrite)

			write.Post("/projects", projects.Create)
			write.Put("/projects/{id:[0-9]+}", projects.Update)
			write.Patch("/projects/{id:[0-9]+}", projects.Update)
			write.Delete("/projects/{id:[0-9]+}", projects.Delete)

			write.Post("/tasks", tasks.Create)
			write.Put("/tasks/{id:[0-9]+}", tasks.Update)
			write.Patch("/tasks/{id:[0-9]+}", tasks.Update)
			write.Delete("/tasks/{id:[0-9]+}", tasks.Delete)
		})
	})

	mountStatic(r, static, logger)

	return r
}

// sessionHandler отдает клиенту роль и анти-CSRF токен его сессии
func sessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusForbidden, "permission denied")
		return
	}
	respond.JSON(w, r, http.StatusOK, sess)
}
