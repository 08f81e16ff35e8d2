package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"

	"projectdesk/internal/cache"
	"projectdesk/internal/clock"
	"projectdesk/internal/config"
	"projectdesk/internal/database"
	_ "projectdesk/internal/docs" // Import swagger docs
	"projectdesk/internal/handlers"
	"projectdesk/internal/logger"
	"projectdesk/internal/reminder"
	"projectdesk/internal/server"
	"projectdesk/internal/services"
	"projectdesk/internal/validator"
)

// @title           ProjectDesk API
// @version         1.0
// @description     Recurring charges, payments and due-soon reminders for client projects.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.ConfigFrom(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(database.DefaultMigrationsPath); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Redis is optional: without it the due-soon view is uncached and
	// reminder passes are only serialized within this process.
	rdb := cache.ConnectOptional(ctx, appConfig.RedisURL)
	var dueSoonCache cache.DueSoonCache = cache.Nop{}
	var locker *redislock.Client
	if rdb != nil {
		defer rdb.Close()
		dueSoonCache = cache.NewDueSoonCache(rdb, appConfig.DueSoonCacheTTL)
		locker = redislock.New(rdb)
	}

	// Initialize services
	db := dbManager.DB()
	clk := clock.Real{}
	userService := services.NewUserService(db, appConfig.FinancialRoles)
	chargeService := services.NewRecurringChargeService(db, clk, dueSoonCache)
	paymentService := services.NewPaymentService(db)
	notificationService := services.NewNotificationService(db)
	auditService := services.NewAuditService(db)

	notifier := reminder.NewNotifier(notificationService, clk, appConfig.ReminderWindowDays)
	poller := reminder.NewPoller(chargeService, userService, notifier, reminder.PollerConfig{
		WindowDays: appConfig.ReminderWindowDays,
		Interval:   appConfig.ReminderInterval,
		Locker:     locker,
		LockTTL:    appConfig.ReminderLockTTL,
	})
	if appConfig.ReminderEnabled {
		go poller.Run(ctx)
	}

	router := server.NewRouter(server.Options{
		Env:                appConfig.Env,
		CORSAllowedOrigins: appConfig.CORSAllowedOrigins,
		FinancialRoles:     appConfig.FinancialRoles,
		PipelineAPIKey:     appConfig.PipelineAPIKey,
	}, server.Handlers{
		Charges: handlers.NewRecurringChargeHandler(chargeService, auditService, clk,
			appConfig.ReminderWindowDays, appConfig.DashboardWindowDays),
		Payments:      handlers.NewPaymentHandler(paymentService, auditService, clk),
		Notifications: handlers.NewNotificationHandler(notificationService, userService, poller),
		Reminders:     handlers.NewReminderHandler(poller),
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting ProjectDesk API on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
		return nil
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
