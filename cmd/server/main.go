package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ponnanna-Pranav/SignDoc/internal/config"
	"github.com/Ponnanna-Pranav/SignDoc/internal/database"
	"github.com/Ponnanna-Pranav/SignDoc/internal/documents"
	"github.com/Ponnanna-Pranav/SignDoc/internal/logger"
	"github.com/Ponnanna-Pranav/SignDoc/internal/signatures"
	"github.com/Ponnanna-Pranav/SignDoc/internal/storage"
	"github.com/Ponnanna-Pranav/SignDoc/pkg/routes"
)

// Application holds the wired service dependencies.
type Application struct {
	config *config.Config
	db     *sql.DB
	logger *slog.Logger
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Finalize(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log = logger.New(&cfg.Logging)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, log); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	store, err := storage.New(&cfg.Storage, log)
	if err != nil {
		log.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	if err := store.Start(context.Background()); err != nil {
		log.Error("failed to start storage", "error", err)
		os.Exit(1)
	}

	app := &Application{
		config: cfg,
		db:     db,
		logger: log,
	}

	docs := documents.New(db, store, log)
	ledger := signatures.NewLedger(db, log)
	signer := signatures.NewSystem(docs, store, ledger, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.routes(docs, signer),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	log.Info("starting server", "addr", srv.Addr)

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	err = <-shutdownError
	if err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func (app *Application) routes(docs documents.System, signer signatures.System) http.Handler {
	r := routes.New()

	docHandler := documents.NewHandler(docs, app.logger, app.config.Storage.MaxUploadSizeBytes())
	docGroup := docHandler.Routes()
	docGroup.Prefix = "/api" + docGroup.Prefix
	r.RegisterGroup(docGroup)

	sigHandler := signatures.NewHandler(signer, app.logger)
	sigGroup := sigHandler.Routes()
	sigGroup.Prefix = "/api" + sigGroup.Prefix
	r.RegisterGroup(sigGroup)

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
	})

	return app.requestLogger(app.enableCORS(r.Build()))
}
