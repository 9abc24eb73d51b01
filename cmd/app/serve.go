package main

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/project-board/internal/auth"
	"github.com/BuzzLyutic/project-board/internal/config"
	"github.com/BuzzLyutic/project-board/internal/db"
	"github.com/BuzzLyutic/project-board/internal/handler"
	"github.com/BuzzLyutic/project-board/internal/repo"
	"github.com/BuzzLyutic/project-board/internal/service"
	"github.com/BuzzLyutic/project-board/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server and the board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	// Подключаем логгер
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Подключаем БД
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer pool.Close()
	logger.Info("successfully connected to the database")

	// Схема доводится до актуальной версии при каждом старте
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}

	projectRepo := repo.NewProjectRepo(pool)
	taskRepo := repo.NewTaskRepo(pool)

	projectService := service.NewProjectService(projectRepo, taskRepo)
	taskService := service.NewTaskService(taskRepo, projectRepo)

	sessions := auth.NewStore(cfg.ViewerTokens, cfg.EditorTokens, logger)

	projectHandler := handler.NewProjectHandler(projectService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)

	// STATIC_DIR позволяет отдавать доску с диска вместо встроенной
	var static fs.FS = web.FS()
	if cfg.StaticDir != "" {
		static = os.DirFS(cfg.StaticDir)
	}

	router := handler.NewRouter(projectHandler, taskHandler, sessions, static, logger)

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Ожидаем сигнала и гасим сервер без обрыва запросов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return nil
}
