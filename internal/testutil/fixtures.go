package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"projectdesk/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Day parses a YYYY-MM-DD literal into a UTC calendar day. It panics on bad input.
func Day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// CreateTestUser creates an active user with the given role and a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	n := nextID()
	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", n),
		FullName: fmt.Sprintf("Test User %d", n),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProject creates an active project.
func CreateTestProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()

	n := nextID()
	project := &models.Project{
		Name:       fmt.Sprintf("Test Project %d", n),
		ClientName: fmt.Sprintf("Client %d", n),
		Status:     models.ProjectStatusActive,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// ChargeOption customizes a charge fixture before it is inserted.
type ChargeOption func(*models.RecurringCharge)

// WithType sets the charge's income/expense type.
func WithType(entryType models.EntryType) ChargeOption {
	return func(c *models.RecurringCharge) { c.Type = &entryType }
}

// WithPeriod sets the charge period and, for custom periods, its length.
func WithPeriod(period models.ChargePeriod, customDays int) ChargeOption {
	return func(c *models.RecurringCharge) {
		c.Period = period
		if period == models.ChargePeriodCustom {
			c.CustomPeriodDays = &customDays
		}
	}
}

// WithCancelled marks the charge as cancelled at the given time.
func WithCancelled(at time.Time, reason string) ChargeOption {
	return func(c *models.RecurringCharge) {
		c.CancelledAt = &at
		c.CancelledReason = &reason
	}
}

// WithAmount sets the charge amount from a decimal literal.
func WithAmount(amount string) ChargeOption {
	return func(c *models.RecurringCharge) { c.Amount = decimal.RequireFromString(amount) }
}

// CreateTestCharge creates an active monthly income charge due on nextDue.
func CreateTestCharge(t *testing.T, db *gorm.DB, nextDue time.Time, opts ...ChargeOption) *models.RecurringCharge {
	t.Helper()

	income := models.EntryTypeIncome
	charge := &models.RecurringCharge{
		Description: fmt.Sprintf("Test Charge %d", nextID()),
		Amount:      decimal.NewFromInt(100),
		Type:        &income,
		Period:      models.ChargePeriodMonthly,
		StartDate:   nextDue.AddDate(0, -1, 0),
		NextDueDate: nextDue,
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(charge)
	}
	if err := db.Create(charge).Error; err != nil {
		t.Fatalf("failed to create test charge: %v", err)
	}
	return charge
}

// CreateTestPayment creates a paid payment with the given type, amount and costs.
func CreateTestPayment(t *testing.T, db *gorm.DB, entryType models.EntryType, amount, hosting string) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		Description: fmt.Sprintf("Test Payment %d", nextID()),
		Amount:      decimal.RequireFromString(amount),
		HostingCost: decimal.RequireFromString(hosting),
		Type:        &entryType,
		Status:      models.PaymentStatusPaid,
		PaymentDate: Day("2024-03-01"),
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}
