// Package server initializes and runs the storefront application: it opens
// the database, applies migrations, builds the service graph and starts the
// HTTP server with graceful shutdown on OS signals.
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

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/RaivoMihlenovs/capstone-project/internal/logging"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/config"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/repomanager"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/rest"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	statsService := services.NewStatsService(db, rm, logger)
	userService := services.NewUserService(db, rm, statsService, cfg.SecretKey, cfg.TokenValidityDuration)
	catalogService := services.NewCatalogService(db, rm, statsService, cfg)
	cartService := services.NewCartService(db, rm)
	orderService := services.NewOrderService(db, rm, statsService, logger)

	srv := rest.NewServer(cfg, logger,
		userService, catalogService, cartService, orderService, statsService)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
