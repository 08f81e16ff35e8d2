package models

import "time"

// NotificationType discriminates notification payloads
type NotificationType string

const (
	NotificationRecurringChargeDueSoon  NotificationType = "recurring_charge_due_soon"
	NotificationRecurringExpenseDueSoon NotificationType = "recurring_expense_due_soon"
)

// EntityRecurringCharge is the entity_type used for charge reminders.
const EntityRecurringCharge = "recurring_charge"

// Notification is an in-app message for one user.
//
// Due-soon reminders carry the OccurrenceDate they were raised for; the
// unique index makes (user, type, charge, occurrence) at-most-once even when
// two passes race.
type Notification struct {
	Base
	UserID         string           `gorm:"type:uuid;not null;index;uniqueIndex:idx_notifications_occurrence,priority:1" json:"user_id"`
	Type           NotificationType `gorm:"type:varchar(50);not null;uniqueIndex:idx_notifications_occurrence,priority:2" json:"type"`
	Title          string           `gorm:"not null" json:"title"`
	Message        string           `gorm:"type:text;not null" json:"message"`
	EntityType     string           `gorm:"type:varchar(50)" json:"entity_type"`
	EntityID       string           `gorm:"type:uuid;index;uniqueIndex:idx_notifications_occurrence,priority:3" json:"entity_id"`
	OccurrenceDate *time.Time       `gorm:"uniqueIndex:idx_notifications_occurrence,priority:4" json:"occurrence_date,omitempty"`
	ActionURL      string           `json:"action_url"`
	IsRead         bool             `gorm:"default:false;index" json:"is_read"`
}
