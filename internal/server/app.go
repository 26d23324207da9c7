// Package server initializes and runs the application: it wires the
// storage backend, provider client, quota ledger, and services, then runs
// the Telegram gateway and the dashboard server until shutdown.
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

	"github.com/dmitrijs2005/filebot/internal/logging"
	"github.com/dmitrijs2005/filebot/internal/server/config"
	"github.com/dmitrijs2005/filebot/internal/server/dashboard"
	"github.com/dmitrijs2005/filebot/internal/server/gateway"
	"github.com/dmitrijs2005/filebot/internal/server/provider"
	"github.com/dmitrijs2005/filebot/internal/server/quota"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filebot/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	gateway   *gateway.Gateway
	dashboard *dashboard.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("missing bot token (BOT_TOKEN env var or -t flag)")
	}

	db, rm, err := repomanager.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if db != nil {
		if err := rm.RunMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	client, err := provider.NewClientFromConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("provider init error: %w", err)
	}

	ledger, err := quota.NewLedger(cfg.QuotaStrategy, rm, client)
	if err != nil {
		return nil, fmt.Errorf("quota init error: %w", err)
	}

	gw, err := gateway.New(cfg.BotToken, logger)
	if err != nil {
		return nil, fmt.Errorf("gateway init error: %w", err)
	}

	accountService := services.NewAccountService(db, rm, client, cfg.ProbeCredential)
	pointsService := services.NewPointsService(db, rm)
	uploadService := services.NewUploadService(db, rm, client, ledger, pointsService, gw, logger, cfg.TransferTimeout)
	dashboardService := services.NewDashboardService(db, rm, ledger)

	gw.Bind(accountService, uploadService, dashboardService)

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		gateway:   gw,
		dashboard: dashboard.NewServer(cfg.DashboardAddr, dashboardService, logger),
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.gateway.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.dashboard.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(ctx, "db close", "error", err)
		}
	}
}
