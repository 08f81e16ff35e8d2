package testutil_test

import (
	"testing"

	"projectdesk/internal/errors"
	"projectdesk/internal/models"
	"projectdesk/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "projects", "recurring_charges", "payments", "notifications", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db, models.UserRoleAdmin)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-05"),
		testutil.WithType(models.EntryTypeExpense),
		testutil.WithPeriod(models.ChargePeriodCustom, 45))
	if charge.EntryType() != models.EntryTypeExpense {
		t.Errorf("expected expense charge, got %s", charge.EntryType())
	}
	if charge.CustomPeriodDays == nil || *charge.CustomPeriodDays != 45 {
		t.Errorf("expected 45 custom days, got %v", charge.CustomPeriodDays)
	}

	payment := testutil.CreateTestPayment(t, db, models.EntryTypeIncome, "1000", "100")
	testutil.AssertDecimal(t, payment.HostingCost, "100")
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrChargeNotFound, "custom message")
	testutil.AssertAppError(t, err, "CHARGE_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
