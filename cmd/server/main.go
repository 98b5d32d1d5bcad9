package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusdesk/studentdir/internal/config"
	"github.com/campusdesk/studentdir/internal/handler"
	"github.com/campusdesk/studentdir/internal/logger"
	"github.com/campusdesk/studentdir/internal/repository"
	"github.com/campusdesk/studentdir/internal/router"
	"github.com/campusdesk/studentdir/internal/service"
	"github.com/campusdesk/studentdir/internal/validator"
	"github.com/campusdesk/studentdir/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Student Directory")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Directory ──────────────────────────────────────────
	// The directory is the single owner of all student records and lives
	// for the lifetime of the process. Nothing is persisted across restarts.
	studentRepo := repository.NewStudentRepository()

	// ─── Start Background Worker ───────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	auditWorker := worker.NewAuditWorker(log)
	go auditWorker.Start(workerCtx)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	studentService := service.NewStudentService(studentRepo, auditWorker)
	mediaService := service.NewMediaService(cfg)
	exportService := service.NewExportService()

	if cfg.SeedDemoData {
		studentService.SeedDemoData()
		log.Info().Int("students", studentRepo.Count()).Msg("Seeded demo data")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Student: handler.NewStudentHandler(studentService, cfg),
		Media:   handler.NewMediaHandler(mediaService),
		Export:  handler.NewExportHandler(studentService, exportService, log),
		Stats:   handler.NewStatsHandler(auditWorker),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the audit worker and let it drain its queue.
	workerCancel()
	time.Sleep(500 * time.Millisecond)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
