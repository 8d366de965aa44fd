package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"dailyreminder/internal/config"

	// Application Layer
	appService "dailyreminder/internal/application/service"

	// Domain Layer
	"dailyreminder/internal/domain/constant"

	// Infrastructure Layer
	"dailyreminder/internal/infrastructure/database"
	lineClient "dailyreminder/internal/infrastructure/line"
	"dailyreminder/internal/infrastructure/notifier"
	"dailyreminder/internal/infrastructure/scheduler"
	tgClient "dailyreminder/internal/infrastructure/telegram"

	// Interfaces Layer
	"dailyreminder/internal/interfaces/api/handler"
	"dailyreminder/internal/interfaces/api/router"
	"dailyreminder/internal/interfaces/command"
	tgPoller "dailyreminder/internal/interfaces/telegram"

	// Packages
	appLogger "dailyreminder/internal/pkg/logger"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "reminder: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Initialization ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appLog, err := appLogger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = appLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	db, err := database.Open(database.Config{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DBDSN,
		LogLevel: cfg.DBLogLevel,
	}, appLog)
	if err != nil {
		appLog.Error("failed to open database", err)
		return err
	}
	scheduleRepo := database.NewScheduleRepository(db)
	defer func() {
		if err := scheduleRepo.Close(); err != nil {
			appLog.Error("error closing database", err)
		} else {
			appLog.Info("database connection closed")
		}
	}()

	routes := notifier.NewRouter()

	var line *lineClient.Client
	if cfg.LineEnabled() {
		line, err = lineClient.NewClient(cfg.LineChannelSecret, cfg.LineChannelToken, appLog)
		if err != nil {
			appLog.Error("failed to create LINE client", err)
			return err
		}
		routes.Register(constant.ChannelLINE, line)
	}

	var telegram *tgClient.Client
	if cfg.TelegramEnabled() {
		telegram, err = tgClient.NewClient(cfg.TelegramToken, appLog, tgClient.WithDebug(cfg.TelegramDebug))
		if err != nil {
			appLog.Error("failed to create telegram client", err)
			return err
		}
		routes.Register(constant.ChannelTelegram, telegram)
	}
	appLog.Info("notifiers registered", zap.Strings("channels", routes.Channels()))

	// --- Application Services ---
	scheduleSvc := appService.NewScheduleService(scheduleRepo, appLog)
	dispatcher := appService.NewReminderDispatcher(
		scheduleRepo,
		notifier.NewThrottled(routes, cfg.SendRatePerSec, cfg.SendBurst),
		appLog,
	)
	schedulerSvc := appService.NewSchedulerService(scheduler.NewScheduler(appLog), dispatcher, appLog)

	// --- Interfaces ---
	var commandOpts []command.HandlerOption
	if telegram != nil {
		commandOpts = append(commandOpts, command.WithBotUsername(telegram.Username()))
	}
	commands := command.NewHandler(scheduleSvc, appLog, commandOpts...)
	routerCfg := &router.Config{
		HealthHandler: handler.NewHealthHandler(routes.Channels),
		Logger:        appLog,
	}
	if line != nil {
		routerCfg.LineHandler = handler.NewLineHandler(line, scheduleSvc, commands, appLog)
	}
	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.NewRouter(routerCfg),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start ---
	if err := schedulerSvc.Start(); err != nil {
		appLog.Error("failed to start scheduler", err)
		return err
	}

	var wg sync.WaitGroup
	if telegram != nil {
		poller := tgPoller.NewPoller(telegram, commands, appLog)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				appLog.Error("telegram poller stopped", err)
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLog.Info("shutting down gracefully, press Ctrl+C again to force")
	case err = <-serverErr:
		appLog.Error("HTTP server ListenAndServe error", err)
	}
	stop()

	// --- Shutdown ---
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop ticking first: this cancels a running pass and waits for it,
	// so nothing touches the store once the deferred Close runs.
	if stopErr := schedulerSvc.Stop(shutdownCtx); stopErr != nil {
		appLog.Error("scheduler did not stop cleanly", stopErr)
	}
	if shutdownErr := apiServer.Shutdown(shutdownCtx); shutdownErr != nil {
		appLog.Error("server forced to shutdown", shutdownErr)
	}
	wg.Wait()

	appLog.Info("graceful shutdown complete")
	return err
}
