package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargePeriod is how often a recurring charge falls due
type ChargePeriod string

const (
	ChargePeriodMonthly   ChargePeriod = "monthly"
	ChargePeriodQuarterly ChargePeriod = "quarterly"
	ChargePeriodAnnual    ChargePeriod = "annual"
	ChargePeriodCustom    ChargePeriod = "custom"
)

// IsValid reports whether p is a supported period.
func (p ChargePeriod) IsValid() bool {
	switch p {
	case ChargePeriodMonthly, ChargePeriodQuarterly, ChargePeriodAnnual, ChargePeriodCustom:
		return true
	}
	return false
}

// RecurringCharge is a repeating income or expense obligation.
//
// A charge is cancelled when CancelledAt is set; CancelledReason is always
// non-empty in that state and all three cancellation columns are nil otherwise.
// Dates are calendar days stored as UTC midnight.
type RecurringCharge struct {
	Base
	Description      string          `gorm:"not null" json:"description"`
	Amount           decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Type             *EntryType      `gorm:"type:varchar(10)" json:"type"`
	Period           ChargePeriod    `gorm:"type:varchar(20);not null" json:"period"`
	CustomPeriodDays *int            `json:"custom_period_days,omitempty"`
	StartDate        time.Time       `gorm:"not null" json:"start_date"`
	NextDueDate      time.Time       `gorm:"not null;index" json:"next_due_date"`
	LastPaymentDate  *time.Time      `json:"last_payment_date,omitempty"`
	IsActive         bool            `gorm:"default:true;index" json:"is_active"`
	ProjectID        *string         `gorm:"type:uuid;index" json:"project_id,omitempty"`
	CreatedBy        string          `gorm:"type:uuid" json:"created_by"`

	CancelledAt     *time.Time `gorm:"index" json:"cancelled_at,omitempty"`
	CancelledBy     *string    `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancelledReason *string    `json:"cancelled_reason,omitempty"`

	// Relationships
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// IsCancelled reports whether the charge sits in the cancelled/history view.
func (c *RecurringCharge) IsCancelled() bool {
	return c.CancelledAt != nil
}

// EntryType returns the charge's type, defaulting legacy rows to income.
func (c *RecurringCharge) EntryType() EntryType {
	return EntryTypeOrIncome(c.Type)
}
