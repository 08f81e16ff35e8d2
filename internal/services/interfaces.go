package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"projectdesk/internal/finance"
	"projectdesk/internal/models"
	"projectdesk/internal/pagination"
)

// UserServicer resolves users mirrored from the auth provider.
type UserServicer interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	HasFinancialRole(role string) bool
	FinancialRecipients(ctx context.Context) ([]string, error)
}

// ChargeInput carries the fields for a new recurring charge.
// NextDueDate defaults to StartDate when nil.
type ChargeInput struct {
	Description      string
	Amount           decimal.Decimal
	Type             models.EntryType
	Period           models.ChargePeriod
	CustomPeriodDays *int
	StartDate        time.Time
	NextDueDate      *time.Time
	ProjectID        *string
}

// ChargeUpdate holds the optional fields of a charge edit. Nil means unchanged.
type ChargeUpdate struct {
	Description      *string
	Amount           *decimal.Decimal
	Type             *models.EntryType
	Period           *models.ChargePeriod
	CustomPeriodDays *int
	NextDueDate      *time.Time
	ProjectID        *string
	IsActive         *bool
}

// RecurringChargeServicer defines the contract for recurring charges and their lifecycle.
type RecurringChargeServicer interface {
	CreateCharge(ctx context.Context, actorID string, in ChargeInput) (*models.RecurringCharge, error)
	UpdateCharge(ctx context.Context, chargeID string, in ChargeUpdate) (*models.RecurringCharge, error)
	GetCharge(ctx context.Context, chargeID string) (*models.RecurringCharge, error)
	ListActiveCharges(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringCharge], error)
	ListCancelledCharges(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringCharge], error)
	ListAllCharges(ctx context.Context) ([]models.RecurringCharge, error)
	ListDueSoon(ctx context.Context, windowDays int) ([]models.RecurringCharge, error)
	CountDueSoon(ctx context.Context, windowDays int) (int, error)
	Cancel(ctx context.Context, actorID, chargeID, reason string) (*models.RecurringCharge, error)
	Restore(ctx context.Context, chargeID string) (*models.RecurringCharge, error)
	Purge(ctx context.Context, chargeID string) error
	MarkPaid(ctx context.Context, chargeID string) (*models.RecurringCharge, error)
}

// PaymentInput carries the fields for a new payment.
type PaymentInput struct {
	ProjectID   *string
	Description string
	Amount      decimal.Decimal
	HostingCost decimal.Decimal
	DomainCost  decimal.Decimal
	OtherCost   decimal.Decimal
	Type        models.EntryType
	Status      models.PaymentStatus
	PaymentDate time.Time
	Notes       string
}

// PaymentFilter holds optional filter parameters for listing payments.
type PaymentFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Status    *models.PaymentStatus
	Type      *models.EntryType
	ProjectID *string
}

// PaymentServicer defines the contract for payments and their soft-delete lifecycle.
type PaymentServicer interface {
	CreatePayment(ctx context.Context, actorID string, in PaymentInput) (*models.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	ListPayments(ctx context.Context, page pagination.PageRequest, filter PaymentFilter) (*pagination.PageResponse[models.Payment], error)
	ListAllPayments(ctx context.Context, filter PaymentFilter) ([]models.Payment, error)
	ListDeletedPayments(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error)
	UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) (*models.Payment, error)
	CancelPayment(ctx context.Context, paymentID, reason string) (*models.Payment, error)
	SoftDeletePayment(ctx context.Context, actorID, paymentID, reason string) error
	RestorePayment(ctx context.Context, paymentID string) (*models.Payment, error)
	PurgePayment(ctx context.Context, paymentID string) error
	Summary(ctx context.Context, filter PaymentFilter) (*finance.Summary, error)
}

// NotificationServicer defines the contract for a user's in-app notifications.
type NotificationServicer interface {
	ListForUser(ctx context.Context, userID string, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	HasOccurrence(ctx context.Context, userID string, notificationType models.NotificationType, chargeID string, due time.Time) (bool, error)
	Insert(ctx context.Context, n *models.Notification) (bool, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, actorID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	ListForResource(ctx context.Context, resourceType, resourceID string) ([]models.AuditLog, error)
}
