// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/catalog"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/config"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/dateformat"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/handler"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/metrics"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/middleware"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/notify"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/repo"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/service"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	if cfg.MigrateOnStart {
		if err := migrate(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
	}

	// New() does not open connections immediately; the ping below does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	slog.Info("database connection established")

	// --- Domain -----------------------------------------------------------
	cities, err := catalog.Cities()
	if err != nil {
		return err
	}
	languages, err := catalog.Languages()
	if err != nil {
		return err
	}
	slog.Info("catalogs loaded", "cities", cities.Len(), "languages", languages.Len())

	dates := dateformat.New()
	m := metrics.New()

	tripRepo := repo.NewTripRepo(pool)
	commentRepo := repo.NewCommentRepo(pool)
	notificationRepo := repo.NewNotificationRepo(pool)

	server := handler.NewServer(handler.Deps{
		Trips:           service.NewTripService(tripRepo, cities, languages, dates),
		Comments:        service.NewCommentService(tripRepo, commentRepo),
		Export:          service.NewExportService(tripRepo),
		Cities:          cities,
		Languages:       languages,
		Dates:           dates,
		CityBrowseLimit: cfg.CityBrowseLimit,
		CitySearchLimit: cfg.CitySearchLimit,
		Metrics:         m,
		MetricsHandler:  m.Handler(),
		Log:             logger,
	})

	// --- Notifications ----------------------------------------------------
	var mailer notify.Mailer = notify.NewLogMailer(logger)
	if cfg.SMTPAddr != "" {
		smtpMailer, err := notify.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
		if err != nil {
			return err
		}
		mailer = smtpMailer
	}
	dispatcher := notify.NewDispatcher(notificationRepo, mailer,
		notify.WithBatchSize(cfg.NotifyBatchSize),
		notify.WithMaxAttempts(cfg.NotifyMaxAttempts),
		notify.WithRecorder(m),
		notify.WithLogger(logger),
	)
	scheduler := notify.NewScheduler(dispatcher, cfg.NotifySchedule, logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → SlogLogger → Metrics → Recoverer → CORS → MaxBodySize.
	// Recoverer sits inside the logger and metrics so a panic is recorded as a 500.
	router := handler.NewRouter(server,
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		middleware.NewSlogLogger(logger),
		middleware.NewMetricsHandler(m),
		chimiddleware.Recoverer,
		middleware.NewCORSHandler(cfg.Origins()),
		middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes),
	)

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	// In-flight requests and the current dispatch batch get 15 seconds.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	jobsDone := scheduler.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	select {
	case <-jobsDone.Done():
	case <-shutdownCtx.Done():
		slog.Warn("notification dispatch still running at shutdown")
	}
	slog.Info("server stopped")
	return nil
}

// migrate applies pending goose migrations over a short-lived database/sql
// connection, since goose does not speak pgxpool.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return migrations.Up(ctx, db)
}
