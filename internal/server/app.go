// Package server initializes and runs the authentication service: it opens
// the database, runs migrations, wires the services, and starts the HTTP
// endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/iKaueMatos/twitter-microservices/internal/logging"
	"github.com/iKaueMatos/twitter-microservices/internal/server/config"
	"github.com/iKaueMatos/twitter-microservices/internal/server/httpapi"
	"github.com/iKaueMatos/twitter-microservices/internal/server/notify"
	"github.com/iKaueMatos/twitter-microservices/internal/server/profile"
	"github.com/iKaueMatos/twitter-microservices/internal/server/repositories/repomanager"
	"github.com/iKaueMatos/twitter-microservices/internal/server/services"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	authService  *services.AuthenticationService
	tokenService *services.TokenService
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	notifier := notify.NewLogNotifier(logger)
	profileClient := profile.NewHTTPClient(cfg.ProfileServiceURL, 10*time.Second)

	activationService := services.NewActivationCodeService(db, rm, notifier, cfg, logger)
	tokenService := services.NewTokenService(db, rm, cfg)
	authService := services.NewAuthenticationService(db, rm, activationService, tokenService, profileClient, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		authService:  authService,
		tokenService: tokenService,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.authService, app.tokenService, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
