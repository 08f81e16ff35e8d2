package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"projectdesk/internal/cache"
	"projectdesk/internal/clock"
	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/logger"
	"projectdesk/internal/models"
	"projectdesk/internal/pagination"
	"projectdesk/internal/schedule"
)

// recurringChargeService handles recurring charges and their lifecycle:
// active -> cancelled -> restored, or cancelled -> purged.
type recurringChargeService struct {
	db    *gorm.DB
	clock clock.Clock
	cache cache.DueSoonCache
}

// NewRecurringChargeService creates a new RecurringChargeServicer.
// A nil dueSoon cache disables caching.
func NewRecurringChargeService(db *gorm.DB, clk clock.Clock, dueSoon cache.DueSoonCache) RecurringChargeServicer {
	if dueSoon == nil {
		dueSoon = cache.Nop{}
	}
	return &recurringChargeService{db: db, clock: clk, cache: dueSoon}
}

func (s *recurringChargeService) today() time.Time {
	return schedule.Date(s.clock.Now())
}

// CreateCharge validates and stores a new active charge.
func (s *recurringChargeService) CreateCharge(ctx context.Context, actorID string, in ChargeInput) (*models.RecurringCharge, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "description is required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	entryType := models.EntryTypeIncome
	if in.Type != "" {
		if !in.Type.IsValid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("unsupported type %q", in.Type))
		}
		entryType = in.Type
	}
	if err := schedule.ValidatePeriod(in.Period, in.CustomPeriodDays); err != nil {
		return nil, err
	}
	if in.StartDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "start_date is required")
	}

	start := schedule.Date(in.StartDate)
	nextDue := start
	if in.NextDueDate != nil {
		nextDue = schedule.Date(*in.NextDueDate)
	}
	if nextDue.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "next_due_date cannot be before start_date")
	}
	if err := s.checkProject(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	charge := &models.RecurringCharge{
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Type:        &entryType,
		Period:      in.Period,
		StartDate:   start,
		NextDueDate: nextDue,
		IsActive:    true,
		ProjectID:   in.ProjectID,
		CreatedBy:   actorID,
	}
	if in.Period == models.ChargePeriodCustom {
		charge.CustomPeriodDays = in.CustomPeriodDays
	}

	if err := s.db.WithContext(ctx).Create(charge).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	s.invalidate(ctx, charge.ID)
	return charge, nil
}

// UpdateCharge edits the descriptive and schedule fields of a charge.
// Cancelled charges must be restored before they can be edited.
func (s *recurringChargeService) UpdateCharge(ctx context.Context, chargeID string, in ChargeUpdate) (*models.RecurringCharge, error) {
	charge, err := s.GetCharge(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if charge.IsCancelled() {
		return nil, apperrors.ErrChargeCancelled
	}

	updates := make(map[string]interface{})
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "description cannot be empty")
		}
		charge.Description = desc
		updates["description"] = desc
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
		}
		charge.Amount = *in.Amount
		updates["amount"] = *in.Amount
	}
	if in.Type != nil {
		if !in.Type.IsValid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("unsupported type %q", *in.Type))
		}
		entryType := *in.Type
		charge.Type = &entryType
		updates["type"] = entryType
	}
	if in.Period != nil || in.CustomPeriodDays != nil {
		period := charge.Period
		if in.Period != nil {
			period = *in.Period
		}
		customDays := charge.CustomPeriodDays
		if in.CustomPeriodDays != nil {
			customDays = in.CustomPeriodDays
		}
		if err := schedule.ValidatePeriod(period, customDays); err != nil {
			return nil, err
		}
		if period != models.ChargePeriodCustom {
			customDays = nil
		}
		charge.Period = period
		charge.CustomPeriodDays = customDays
		updates["period"] = period
		updates["custom_period_days"] = customDays
	}
	if in.NextDueDate != nil {
		nextDue := schedule.Date(*in.NextDueDate)
		if nextDue.Before(charge.StartDate) {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "next_due_date cannot be before start_date")
		}
		charge.NextDueDate = nextDue
		updates["next_due_date"] = nextDue
	}
	if in.ProjectID != nil {
		if err := s.checkProject(ctx, in.ProjectID); err != nil {
			return nil, err
		}
		charge.ProjectID = in.ProjectID
		updates["project_id"] = *in.ProjectID
	}
	if in.IsActive != nil {
		charge.IsActive = *in.IsActive
		updates["is_active"] = *in.IsActive
	}

	if len(updates) > 0 {
		if err := s.updateIf(ctx, charge, "cancelled_at IS NULL", updates, apperrors.ErrChargeCancelled); err != nil {
			return nil, err
		}
		s.invalidate(ctx, charge.ID)
	}

	return charge, nil
}

// GetCharge returns a charge by ID regardless of its lifecycle state.
func (s *recurringChargeService) GetCharge(ctx context.Context, chargeID string) (*models.RecurringCharge, error) {
	var charge models.RecurringCharge
	if err := s.db.WithContext(ctx).Preload("Project").Where("id = ?", chargeID).First(&charge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChargeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &charge, nil
}

// ListActiveCharges returns charges that are not cancelled, soonest due first.
func (s *recurringChargeService) ListActiveCharges(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringCharge], error) {
	base := s.db.WithContext(ctx).Model(&models.RecurringCharge{}).Where("cancelled_at IS NULL")
	return s.listPage(base, page, "next_due_date ASC, id ASC")
}

// ListCancelledCharges returns the cancelled/history view, most recently cancelled first.
func (s *recurringChargeService) ListCancelledCharges(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringCharge], error) {
	base := s.db.WithContext(ctx).Model(&models.RecurringCharge{}).Where("cancelled_at IS NOT NULL")
	return s.listPage(base, page, "cancelled_at DESC, id ASC")
}

func (s *recurringChargeService) listPage(base *gorm.DB, page pagination.PageRequest, order string) (*pagination.PageResponse[models.RecurringCharge], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	var charges []models.RecurringCharge
	if err := base.Preload("Project").Order(order).Scopes(pagination.Paginate(page)).Find(&charges).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	return pagination.NewPageResponse(charges, page, totalItems), nil
}

// ListAllCharges returns every charge, cancelled ones included, for export.
func (s *recurringChargeService) ListAllCharges(ctx context.Context) ([]models.RecurringCharge, error) {
	var charges []models.RecurringCharge
	if err := s.db.WithContext(ctx).Preload("Project").Order("next_due_date ASC, id ASC").Find(&charges).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return charges, nil
}

// ListDueSoon returns active, non-cancelled charges whose next due date
// falls within windowDays of today, inclusive on both ends.
func (s *recurringChargeService) ListDueSoon(ctx context.Context, windowDays int) ([]models.RecurringCharge, error) {
	if windowDays < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "window_days cannot be negative")
	}

	now := s.clock.Now()
	today := schedule.Date(now)
	day := schedule.FormatISO(today)

	if cached, ok, err := s.cache.Get(ctx, windowDays, day); err != nil {
		logger.Get().Warnw("due-soon cache read failed", "error", err, "window_days", windowDays)
	} else if ok {
		return cached, nil
	}
	generation, genErr := s.cache.Generation(ctx)

	var candidates []models.RecurringCharge
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND cancelled_at IS NULL AND next_due_date BETWEEN ? AND ?",
			true, today, today.AddDate(0, 0, windowDays)).
		Order("next_due_date ASC, id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	dueSoon := make([]models.RecurringCharge, 0, len(candidates))
	for _, c := range candidates {
		if schedule.IsDueSoon(c.NextDueDate, now, windowDays) {
			dueSoon = append(dueSoon, c)
		}
	}

	if genErr != nil {
		logger.Get().Warnw("due-soon cache generation read failed", "error", genErr, "window_days", windowDays)
	} else if err := s.cache.Set(ctx, windowDays, day, generation, dueSoon); err != nil {
		logger.Get().Warnw("due-soon cache write failed", "error", err, "window_days", windowDays)
	}
	return dueSoon, nil
}

// CountDueSoon returns the number of charges ListDueSoon would return.
func (s *recurringChargeService) CountDueSoon(ctx context.Context, windowDays int) (int, error) {
	charges, err := s.ListDueSoon(ctx, windowDays)
	if err != nil {
		return 0, err
	}
	return len(charges), nil
}

// Cancel moves an active charge to the cancelled view. The reason is required.
func (s *recurringChargeService) Cancel(ctx context.Context, actorID, chargeID, reason string) (*models.RecurringCharge, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "a cancellation reason is required")
	}

	charge, err := s.GetCharge(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if charge.IsCancelled() {
		return nil, apperrors.ErrChargeCancelled
	}

	now := s.clock.Now()
	updates := map[string]interface{}{
		"cancelled_at":     now,
		"cancelled_by":     actorID,
		"cancelled_reason": reason,
	}
	if err := s.updateIf(ctx, charge, "cancelled_at IS NULL", updates, apperrors.ErrChargeCancelled); err != nil {
		return nil, err
	}
	charge.CancelledAt = &now
	charge.CancelledBy = &actorID
	charge.CancelledReason = &reason

	s.invalidate(ctx, charge.ID)
	return charge, nil
}

// Restore un-cancels a charge. Its due date is left as it was.
func (s *recurringChargeService) Restore(ctx context.Context, chargeID string) (*models.RecurringCharge, error) {
	charge, err := s.GetCharge(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if !charge.IsCancelled() {
		return nil, apperrors.ErrChargeNotCancelled
	}

	updates := map[string]interface{}{
		"cancelled_at":     nil,
		"cancelled_by":     nil,
		"cancelled_reason": nil,
	}
	if err := s.updateIf(ctx, charge, "cancelled_at IS NOT NULL", updates, apperrors.ErrChargeNotCancelled); err != nil {
		return nil, err
	}
	charge.CancelledAt = nil
	charge.CancelledBy = nil
	charge.CancelledReason = nil

	s.invalidate(ctx, charge.ID)
	return charge, nil
}

// Purge permanently removes a cancelled charge. Active charges must be cancelled first.
func (s *recurringChargeService) Purge(ctx context.Context, chargeID string) error {
	charge, err := s.GetCharge(ctx, chargeID)
	if err != nil {
		return err
	}
	if !charge.IsCancelled() {
		return apperrors.ErrChargeNotCancelled
	}

	result := s.db.WithContext(ctx).Unscoped().Where("cancelled_at IS NOT NULL").Delete(charge)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStore, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrChargeNotCancelled
	}

	s.invalidate(ctx, charge.ID)
	return nil
}

// MarkPaid records a payment for today and rolls the due date forward one
// period from the previous due date, so a late payment does not shorten the
// next period.
func (s *recurringChargeService) MarkPaid(ctx context.Context, chargeID string) (*models.RecurringCharge, error) {
	charge, err := s.GetCharge(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if charge.IsCancelled() {
		return nil, apperrors.ErrChargeCancelled
	}

	nextDue, err := schedule.Advance(charge.Period, charge.NextDueDate, charge.CustomPeriodDays)
	if err != nil {
		return nil, err
	}
	paidOn := s.today()

	updates := map[string]interface{}{
		"next_due_date":     nextDue,
		"last_payment_date": paidOn,
	}
	if err := s.updateIf(ctx, charge, "cancelled_at IS NULL", updates, apperrors.ErrChargeCancelled); err != nil {
		return nil, err
	}
	charge.NextDueDate = nextDue
	charge.LastPaymentDate = &paidOn

	s.invalidate(ctx, charge.ID)
	return charge, nil
}

// updateIf applies updates only while cond still holds for the row, so a
// lifecycle change that landed after charge was loaded is not overwritten.
// It returns gate when no row matched.
func (s *recurringChargeService) updateIf(ctx context.Context, charge *models.RecurringCharge, cond string, updates map[string]interface{}, gate error) error {
	result := s.db.WithContext(ctx).Model(charge).Where(cond).Updates(updates)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStore, result.Error)
	}
	if result.RowsAffected == 0 {
		return gate
	}
	return nil
}

func (s *recurringChargeService) checkProject(ctx context.Context, projectID *string) error {
	if projectID == nil {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", *projectID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if count == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// invalidate drops cached due-soon views. A failure only means a stale badge
// until the TTL expires, so it is logged rather than returned.
func (s *recurringChargeService) invalidate(ctx context.Context, chargeID string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Get().Warnw("failed to invalidate due-soon cache", "error", err, "charge_id", chargeID)
	}
}
