package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"projectdesk/internal/logger"
	"projectdesk/internal/models"
)

// passLockKey serializes reminder passes across API and CLI instances.
const passLockKey = "reminder:pass"

// ChargeSource lists the due-soon candidate charges.
type ChargeSource interface {
	ListDueSoon(ctx context.Context, windowDays int) ([]models.RecurringCharge, error)
}

// RecipientSource lists the users entitled to financial reminders.
type RecipientSource interface {
	FinancialRecipients(ctx context.Context) ([]string, error)
}

// PollerConfig configures a Poller.
type PollerConfig struct {
	WindowDays int
	Interval   time.Duration
	// Locker is optional; without it passes are only serialized in-process.
	Locker  *redislock.Client
	LockTTL time.Duration
}

// Poller runs reminder passes: fetch candidates, resolve recipients, evaluate.
// Passes never overlap within a process, and with a Locker they do not
// overlap across processes either.
type Poller struct {
	charges    ChargeSource
	recipients RecipientSource
	notifier   *Notifier
	cfg        PollerConfig
	tracer     trace.Tracer

	mu      sync.Mutex
	handled *HandledSet
}

// NewPoller creates a Poller.
func NewPoller(charges ChargeSource, recipients RecipientSource, notifier *Notifier, cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = time.Minute
	}
	return &Poller{
		charges:    charges,
		recipients: recipients,
		notifier:   notifier,
		cfg:        cfg,
		tracer:     otel.Tracer(tracerName),
		handled:    NewHandledSet(),
	}
}

// RunOnce performs one pass for every financial recipient.
func (p *Poller) RunOnce(ctx context.Context) (*Result, error) {
	return p.pass(ctx, "all", func(ctx context.Context) ([]string, error) {
		return p.recipients.FinancialRecipients(ctx)
	})
}

// EvaluateFor performs one pass for a single recipient, as triggered by that
// user's session.
func (p *Poller) EvaluateFor(ctx context.Context, userID string) (*Result, error) {
	return p.pass(ctx, "session", func(context.Context) ([]string, error) {
		return []string{userID}, nil
	})
}

func (p *Poller) pass(ctx context.Context, trigger string, recipients func(context.Context) ([]string, error)) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "reminder.pass", trace.WithAttributes(attribute.String("reminder.trigger", trigger)))
	defer span.End()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cfg.Locker != nil {
		lock, err := p.cfg.Locker.Obtain(ctx, passLockKey, p.cfg.LockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			logger.Named("reminder").Debugw("reminder pass skipped, lock held elsewhere", "trigger", trigger)
			span.SetAttributes(attribute.Bool("reminder.skipped", true))
			return &Result{Emitted: []models.Notification{}, Skipped: true}, nil
		}
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		defer func() {
			if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				logger.Named("reminder").Warnw("failed to release reminder pass lock", "error", err)
			}
		}()
	}

	candidates, err := p.charges.ListDueSoon(ctx, p.cfg.WindowDays)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	users, err := recipients(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return p.notifier.Evaluate(ctx, candidates, users, p.handled)
}

// Run performs a pass immediately and then every Interval until ctx is done.
// Pass errors are logged; the loop keeps going.
func (p *Poller) Run(ctx context.Context) {
	log := logger.Named("reminder")
	log.Infow("reminder poller started", "interval", p.cfg.Interval.String(), "window_days", p.cfg.WindowDays)

	p.runLogged(ctx)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infow("reminder poller stopped")
			return
		case <-ticker.C:
			p.runLogged(ctx)
		}
	}
}

func (p *Poller) runLogged(ctx context.Context) {
	if _, err := p.RunOnce(ctx); err != nil && ctx.Err() == nil {
		logger.Named("reminder").Errorw("reminder pass failed", "error", err)
	}
}

// Tracked returns the number of occurrences remembered between passes.
func (p *Poller) Tracked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handled.Len()
}
