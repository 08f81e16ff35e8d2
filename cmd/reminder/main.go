// Command reminder runs a single due-soon reminder pass and exits. It is meant
// for cron or a scheduler when the API's in-process poller is disabled.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"

	"projectdesk/internal/cache"
	"projectdesk/internal/clock"
	"projectdesk/internal/config"
	"projectdesk/internal/database"
	"projectdesk/internal/logger"
	"projectdesk/internal/reminder"
	"projectdesk/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Errorw("reminder run failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	var dueSoonCache cache.DueSoonCache = cache.Nop{}
	var locker *redislock.Client
	if rdb := cache.ConnectOptional(ctx, cfg.RedisURL); rdb != nil {
		defer rdb.Close()
		dueSoonCache = cache.NewDueSoonCache(rdb, cfg.DueSoonCacheTTL)
		locker = redislock.New(rdb)
	}

	db := dbManager.DB()
	clk := clock.Real{}
	notifier := reminder.NewNotifier(services.NewNotificationService(db), clk, cfg.ReminderWindowDays)
	poller := reminder.NewPoller(
		services.NewRecurringChargeService(db, clk, dueSoonCache),
		services.NewUserService(db, cfg.FinancialRoles),
		notifier,
		reminder.PollerConfig{
			WindowDays: cfg.ReminderWindowDays,
			Locker:     locker,
			LockTTL:    cfg.ReminderLockTTL,
		},
	)

	start := time.Now()
	result, err := poller.RunOnce(ctx)
	if err != nil {
		return err
	}

	logger.Get().Infow("reminder run completed",
		"emitted", len(result.Emitted),
		"existing", result.Existing,
		"failed", result.Failed,
		"pruned", result.Pruned,
		"skipped", result.Skipped,
		"duration", time.Since(start).String(),
	)

	if result.Failed > 0 {
		return fmt.Errorf("%d notification(s) could not be written", result.Failed)
	}
	return nil
}
