package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/finance"
	"projectdesk/internal/models"
	"projectdesk/internal/pagination"
	"projectdesk/internal/schedule"
)

// paymentService handles payments. Deleting is soft; a deleted payment can
// be restored, or purged for good.
type paymentService struct {
	db *gorm.DB
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB) PaymentServicer {
	return &paymentService{db: db}
}

// CreatePayment validates and stores a payment.
func (s *paymentService) CreatePayment(ctx context.Context, actorID string, in PaymentInput) (*models.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	for name, cost := range map[string]decimal.Decimal{
		"hosting_cost": in.HostingCost,
		"domain_cost":  in.DomainCost,
		"other_cost":   in.OtherCost,
	} {
		if cost.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, name+" cannot be negative")
		}
	}
	entryType := models.EntryTypeIncome
	if in.Type != "" {
		if !in.Type.IsValid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("unsupported type %q", in.Type))
		}
		entryType = in.Type
	}
	status := models.PaymentStatusPending
	if in.Status != "" {
		if !in.Status.IsValid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("unsupported status %q", in.Status))
		}
		status = in.Status
	}
	if in.PaymentDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "payment_date is required")
	}
	if in.ProjectID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", *in.ProjectID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		if count == 0 {
			return nil, apperrors.ErrProjectNotFound
		}
	}

	payment := &models.Payment{
		ProjectID:   in.ProjectID,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		HostingCost: in.HostingCost,
		DomainCost:  in.DomainCost,
		OtherCost:   in.OtherCost,
		Type:        &entryType,
		Status:      status,
		PaymentDate: schedule.Date(in.PaymentDate),
		Notes:       in.Notes,
		CreatedBy:   actorID,
	}

	if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return payment, nil
}

// GetPayment returns a live (not soft-deleted) payment by ID.
func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).Preload("Project").Where("id = ?", paymentID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &payment, nil
}

func (s *paymentService) filtered(ctx context.Context, filter PaymentFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Payment{})
	if filter.FromDate != nil {
		q = q.Where("payment_date >= ?", schedule.Date(*filter.FromDate))
	}
	if filter.ToDate != nil {
		q = q.Where("payment_date <= ?", schedule.Date(*filter.ToDate))
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		if *filter.Type == models.EntryTypeIncome {
			// Untyped legacy rows count as income.
			q = q.Where("(type = ? OR type IS NULL OR type = '')", models.EntryTypeIncome)
		} else {
			q = q.Where("type = ?", *filter.Type)
		}
	}
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	return q
}

// ListPayments returns a page of live payments, newest first.
func (s *paymentService) ListPayments(ctx context.Context, page pagination.PageRequest, filter PaymentFilter) (*pagination.PageResponse[models.Payment], error) {
	page.Defaults()
	base := s.filtered(ctx, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	var payments []models.Payment
	if err := base.Preload("Project").Order("payment_date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	return pagination.NewPageResponse(payments, page, totalItems), nil
}

// ListAllPayments returns every live payment matching filter, for export and summaries.
func (s *paymentService) ListAllPayments(ctx context.Context, filter PaymentFilter) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.filtered(ctx, filter).Preload("Project").Order("payment_date ASC, id ASC").Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return payments, nil
}

// ListDeletedPayments returns soft-deleted payments, most recently deleted first.
func (s *paymentService) ListDeletedPayments(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
	page.Defaults()
	base := s.db.WithContext(ctx).Unscoped().Model(&models.Payment{}).Where("deleted_at IS NOT NULL")

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	var payments []models.Payment
	if err := base.Order("deleted_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	return pagination.NewPageResponse(payments, page, totalItems), nil
}

// UpdatePaymentStatus changes a live payment's status.
func (s *paymentService) UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) (*models.Payment, error) {
	if !status.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("unsupported status %q", status))
	}
	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(payment).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	payment.Status = status
	return payment, nil
}

// CancelPayment marks a payment cancelled and records the reason in its notes.
func (s *paymentService) CancelPayment(ctx context.Context, paymentID, reason string) (*models.Payment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "a cancellation reason is required")
	}
	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	notes := finance.WithCancellationReason(payment.Notes, reason)
	updates := map[string]interface{}{
		"status": models.PaymentStatusCancelled,
		"notes":  notes,
	}
	if err := s.db.WithContext(ctx).Model(payment).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	payment.Status = models.PaymentStatusCancelled
	payment.Notes = notes
	return payment, nil
}

// SoftDeletePayment hides a payment from listings and aggregates, recording
// who deleted it and why.
func (s *paymentService) SoftDeletePayment(ctx context.Context, actorID, paymentID, reason string) error {
	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"deleted_by": actorID}
		if reason != "" {
			updates["deletion_reason"] = reason
		}
		if err := tx.Model(payment).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Delete(payment).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

func (s *paymentService) getDeleted(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).Unscoped().Where("id = ?", paymentID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if !payment.IsDeleted() {
		return nil, apperrors.ErrPaymentNotDeleted
	}
	return &payment, nil
}

// RestorePayment brings a soft-deleted payment back.
func (s *paymentService) RestorePayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := s.getDeleted(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentNotDeleted) {
			return nil, apperrors.WithMessage(apperrors.ErrPaymentNotDeleted, "Payment is not deleted")
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"deleted_at":      nil,
		"deleted_by":      nil,
		"deletion_reason": nil,
	}
	if err := s.db.WithContext(ctx).Unscoped().Model(payment).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	payment.DeletedAt = gorm.DeletedAt{}
	payment.DeletedBy = nil
	payment.DeletionReason = nil
	return payment, nil
}

// PurgePayment permanently removes a soft-deleted payment.
func (s *paymentService) PurgePayment(ctx context.Context, paymentID string) error {
	payment, err := s.getDeleted(ctx, paymentID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Unscoped().Delete(payment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// Summary totals live, non-cancelled payments matching filter.
func (s *paymentService) Summary(ctx context.Context, filter PaymentFilter) (*finance.Summary, error) {
	payments, err := s.ListAllPayments(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := finance.Summarize(payments)
	return &summary, nil
}
