package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/models"
	"projectdesk/internal/pagination"
	"projectdesk/internal/schedule"
)

// notificationService stores in-app notifications and answers the
// "already notified?" question for reminder passes.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// ListForUser returns a page of the user's notifications, newest first.
func (s *notificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		base = base.Where("is_read = ?", false)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	var notifications []models.Notification
	if err := base.Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	return pagination.NewPageResponse(notifications, page, totalItems), nil
}

// UnreadCount returns how many unread notifications the user has.
func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStore, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrStore, result.Error)
	}
	return result.RowsAffected, nil
}

// HasOccurrence reports whether the user was already reminded about the
// charge for the given due date. Rows written before occurrence_date existed
// are matched on the formatted date inside the message.
func (s *notificationService) HasOccurrence(ctx context.Context, userID string, notificationType models.NotificationType, chargeID string, due time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND entity_id = ?", userID, notificationType, chargeID).
		Where("occurrence_date = ? OR (occurrence_date IS NULL AND message LIKE ?)",
			schedule.Date(due), "%"+schedule.FormatDisplay(due)+"%").
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return count > 0, nil
}

// Insert stores a notification. It returns false without error when the
// unique occurrence index shows another pass got there first.
func (s *notificationService) Insert(ctx context.Context, n *models.Notification) (bool, error) {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return true, nil
}
