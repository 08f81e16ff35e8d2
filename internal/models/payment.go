package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusCancelled:
		return true
	}
	return false
}

// Payment is a single realized income or expense event.
// Amount is gross; the three cost columns are pass-through costs that are
// deducted from income only. A soft-deleted payment (DeletedAt set) is kept
// for restore but excluded from listings and aggregates.
type Payment struct {
	Base
	ProjectID   *string         `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	HostingCost decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"hosting_cost"`
	DomainCost  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"domain_cost"`
	OtherCost   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"other_cost"`
	Type        *EntryType      `gorm:"type:varchar(10)" json:"type"`
	Status      PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentDate time.Time       `gorm:"not null;index" json:"payment_date"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedBy   string          `gorm:"type:uuid" json:"created_by"`

	DeletedBy      *string `gorm:"type:uuid" json:"deleted_by,omitempty"`
	DeletionReason *string `json:"deletion_reason,omitempty"`

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// EntryType returns the payment's type, defaulting legacy rows to income.
func (p *Payment) EntryType() EntryType {
	return EntryTypeOrIncome(p.Type)
}
