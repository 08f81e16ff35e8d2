// Package reminder turns due-soon recurring charges into at-most-once
// in-app notifications and drives the periodic passes that do so.
package reminder

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"projectdesk/internal/clock"
	"projectdesk/internal/logger"
	"projectdesk/internal/models"
	"projectdesk/internal/schedule"
)

const tracerName = "projectdesk/reminder"

// NotificationSink is the notification store as seen by the emitter.
type NotificationSink interface {
	HasOccurrence(ctx context.Context, userID string, notificationType models.NotificationType, chargeID string, due time.Time) (bool, error)
	// Insert returns false when the row already exists.
	Insert(ctx context.Context, n *models.Notification) (bool, error)
}

// Result summarizes one evaluation.
type Result struct {
	Emitted  []models.Notification `json:"emitted"`
	Existing int                   `json:"existing"`
	Failed   int                   `json:"failed"`
	Pruned   int                   `json:"pruned"`
	// Skipped is set when another instance held the pass lock.
	Skipped bool `json:"skipped"`
}

// Notifier decides which reminders are owed and writes them.
type Notifier struct {
	sink       NotificationSink
	clock      clock.Clock
	windowDays int
	tracer     trace.Tracer
}

// NewNotifier creates a Notifier reminding windowDays ahead of each due date.
func NewNotifier(sink NotificationSink, clk clock.Clock, windowDays int) *Notifier {
	return &Notifier{
		sink:       sink,
		clock:      clk,
		windowDays: windowDays,
		tracer:     otel.Tracer(tracerName),
	}
}

// Evaluate emits one notification per (recipient, charge, due date) that has
// not been notified yet. handled carries resolved occurrences between passes;
// pass nil to scope it to this call. Keys for occurrences that are no longer
// due soon are pruned from handled before returning.
//
// Insertion failures are logged and counted; they never stop the batch. The
// only error returned is the context's.
func (n *Notifier) Evaluate(ctx context.Context, candidates []models.RecurringCharge, recipients []string, handled *HandledSet) (*Result, error) {
	ctx, span := n.tracer.Start(ctx, "reminder.evaluate", trace.WithAttributes(
		attribute.Int("reminder.candidates", len(candidates)),
		attribute.Int("reminder.recipients", len(recipients)),
	))
	defer span.End()

	if handled == nil {
		handled = NewHandledSet()
	}
	log := logger.Named("reminder")
	now := n.clock.Now()
	result := &Result{Emitted: []models.Notification{}}

	current := make(map[string]struct{}, len(candidates))
	for i := range candidates {
		charge := &candidates[i]
		if !charge.IsActive || charge.IsCancelled() || !schedule.IsDueSoon(charge.NextDueDate, now, n.windowDays) {
			continue
		}
		key := OccurrenceKey(charge.ID, charge.NextDueDate)
		current[key] = struct{}{}

		for _, recipient := range recipients {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if handled.Has(recipient, key) {
				continue
			}
			notification, created, err := n.emit(ctx, charge, recipient, now)
			if err != nil {
				result.Failed++
				log.Errorw("failed to emit due-soon notification",
					"error", err,
					"charge_id", charge.ID,
					"user_id", recipient,
					"due_date", schedule.FormatISO(charge.NextDueDate),
				)
				continue
			}
			handled.Mark(recipient, key)
			if created {
				result.Emitted = append(result.Emitted, *notification)
			} else {
				result.Existing++
			}
		}
	}

	result.Pruned = handled.Retain(current)
	span.SetAttributes(
		attribute.Int("reminder.emitted", len(result.Emitted)),
		attribute.Int("reminder.failed", result.Failed),
	)
	if len(result.Emitted) > 0 || result.Failed > 0 {
		log.Infow("reminder evaluation finished",
			"emitted", len(result.Emitted),
			"existing", result.Existing,
			"failed", result.Failed,
			"pruned", result.Pruned,
		)
	}
	return result, nil
}

// emit checks the store and inserts the reminder if none exists yet.
// created is false when the occurrence was already notified.
func (n *Notifier) emit(ctx context.Context, charge *models.RecurringCharge, recipient string, now time.Time) (*models.Notification, bool, error) {
	notificationType := TypeFor(charge)
	exists, err := n.sink.HasOccurrence(ctx, recipient, notificationType, charge.ID, charge.NextDueDate)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	notification := Compose(charge, recipient, now)
	created, err := n.sink.Insert(ctx, notification)
	if err != nil {
		return nil, false, err
	}
	return notification, created, nil
}

// TypeFor returns the notification type for a charge's income/expense kind.
func TypeFor(charge *models.RecurringCharge) models.NotificationType {
	if charge.EntryType() == models.EntryTypeExpense {
		return models.NotificationRecurringExpenseDueSoon
	}
	return models.NotificationRecurringChargeDueSoon
}

// Compose builds the reminder row for a charge's current due date. The
// message always contains the display-formatted due date.
func Compose(charge *models.RecurringCharge, recipient string, now time.Time) *models.Notification {
	icon, label := "💰", "Recurring charge"
	if charge.EntryType() == models.EntryTypeExpense {
		icon, label = "💸", "Recurring expense"
	}

	days := schedule.DaysUntil(charge.NextDueDate, now)
	when := schedule.Humanize(days)
	if days > 1 {
		when = "due in " + when
	}
	due := schedule.Date(charge.NextDueDate)

	return &models.Notification{
		UserID:         recipient,
		Type:           TypeFor(charge),
		Title:          fmt.Sprintf("%s %s %s", icon, label, when),
		Message:        fmt.Sprintf("%s (%s) is %s, on %s.", charge.Description, charge.Amount.StringFixed(2), when, schedule.FormatDisplay(due)),
		EntityType:     models.EntityRecurringCharge,
		EntityID:       charge.ID,
		OccurrenceDate: &due,
		ActionURL:      "/finance/recurring-charges/" + charge.ID,
	}
}
