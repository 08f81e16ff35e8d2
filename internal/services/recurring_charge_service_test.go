package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"projectdesk/internal/cache"
	"projectdesk/internal/clock"
	"projectdesk/internal/models"
	"projectdesk/internal/pagination"
	"projectdesk/internal/schedule"
	"projectdesk/internal/testutil"
)

func newChargeService(db *gorm.DB, today string) (RecurringChargeServicer, *clock.Fixed) {
	clk := clock.NewFixed(testutil.Day(today).Add(10 * time.Hour))
	return NewRecurringChargeService(db, clk, nil), clk
}

func intPtr(n int) *int { return &n }

func assertDay(t *testing.T, got time.Time, want string) {
	t.Helper()
	if schedule.FormatISO(got) != want {
		t.Errorf("expected %s, got %s", want, schedule.FormatISO(got))
	}
}

func TestCreateCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")
		user := testutil.CreateTestUser(t, db, models.UserRoleAdmin)

		charge, err := svc.CreateCharge(ctx, user.ID, ChargeInput{
			Description: "Hosting retainer",
			Amount:      decimal.NewFromInt(120),
			Period:      models.ChargePeriodMonthly,
			StartDate:   testutil.Day("2024-01-15"),
		})
		testutil.AssertNoError(t, err)

		if charge.ID == "" {
			t.Fatal("expected charge ID")
		}
		if charge.EntryType() != models.EntryTypeIncome {
			t.Errorf("expected income by default, got %s", charge.EntryType())
		}
		assertDay(t, charge.NextDueDate, "2024-01-15")
		if !charge.IsActive || charge.IsCancelled() {
			t.Error("expected new charge to be active and not cancelled")
		}
		if charge.CreatedBy != user.ID {
			t.Errorf("expected created_by %s, got %s", user.ID, charge.CreatedBy)
		}
	})

	t.Run("custom_requires_positive_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")

		for _, days := range []*int{nil, intPtr(0), intPtr(-3)} {
			_, err := svc.CreateCharge(ctx, "", ChargeInput{
				Description:      "Custom",
				Amount:           decimal.NewFromInt(10),
				Period:           models.ChargePeriodCustom,
				CustomPeriodDays: days,
				StartDate:        testutil.Day("2024-01-01"),
			})
			testutil.AssertAppError(t, err, "INVALID_PERIOD_CONFIG")
		}
	})

	t.Run("custom_days_dropped_for_other_periods", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")

		charge, err := svc.CreateCharge(ctx, "", ChargeInput{
			Description:      "Quarterly",
			Amount:           decimal.NewFromInt(10),
			Period:           models.ChargePeriodQuarterly,
			CustomPeriodDays: intPtr(12),
			StartDate:        testutil.Day("2024-01-01"),
		})
		testutil.AssertNoError(t, err)
		if charge.CustomPeriodDays != nil {
			t.Errorf("expected custom days to be ignored, got %d", *charge.CustomPeriodDays)
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")

		_, err := svc.CreateCharge(ctx, "", ChargeInput{
			Description: "Free",
			Amount:      decimal.Zero,
			Period:      models.ChargePeriodMonthly,
			StartDate:   testutil.Day("2024-01-01"),
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("next_due_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")

		nextDue := testutil.Day("2023-12-31")
		_, err := svc.CreateCharge(ctx, "", ChargeInput{
			Description: "Backdated",
			Amount:      decimal.NewFromInt(10),
			Period:      models.ChargePeriodMonthly,
			StartDate:   testutil.Day("2024-01-01"),
			NextDueDate: &nextDue,
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("unknown_project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")

		projectID := "01900000-0000-7000-8000-000000000000"
		_, err := svc.CreateCharge(ctx, "", ChargeInput{
			Description: "Orphan",
			Amount:      decimal.NewFromInt(10),
			Period:      models.ChargePeriodMonthly,
			StartDate:   testutil.Day("2024-01-01"),
			ProjectID:   &projectID,
		})
		testutil.AssertAppError(t, err, "PROJECT_NOT_FOUND")
	})
}

func TestUpdateCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("switch_to_custom_requires_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-02-01"))

		custom := models.ChargePeriodCustom
		_, err := svc.UpdateCharge(ctx, charge.ID, ChargeUpdate{Period: &custom})
		testutil.AssertAppError(t, err, "INVALID_PERIOD_CONFIG")

		updated, err := svc.UpdateCharge(ctx, charge.ID, ChargeUpdate{Period: &custom, CustomPeriodDays: intPtr(14)})
		testutil.AssertNoError(t, err)
		if updated.Period != models.ChargePeriodCustom || *updated.CustomPeriodDays != 14 {
			t.Errorf("expected custom/14, got %s/%v", updated.Period, updated.CustomPeriodDays)
		}
	})

	t.Run("fields_persist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-02-01"))

		desc := "Renamed"
		amount := decimal.RequireFromString("99.95")
		expense := models.EntryTypeExpense
		_, err := svc.UpdateCharge(ctx, charge.ID, ChargeUpdate{Description: &desc, Amount: &amount, Type: &expense})
		testutil.AssertNoError(t, err)

		reloaded, err := svc.GetCharge(ctx, charge.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Description != "Renamed" {
			t.Errorf("expected description Renamed, got %s", reloaded.Description)
		}
		testutil.AssertDecimal(t, reloaded.Amount, "99.95")
		if reloaded.EntryType() != models.EntryTypeExpense {
			t.Errorf("expected expense, got %s", reloaded.EntryType())
		}
	})

	t.Run("cancelled_charge", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-01")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-02-01"),
			testutil.WithCancelled(testutil.Day("2024-01-01"), "duplicate entry"))

		desc := "Nope"
		_, err := svc.UpdateCharge(ctx, charge.ID, ChargeUpdate{Description: &desc})
		testutil.AssertAppError(t, err, "CHARGE_CANCELLED")
	})
}

func TestMarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("late_payment_anchors_on_previous_due_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-25")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-10"))

		paid, err := svc.MarkPaid(ctx, charge.ID)
		testutil.AssertNoError(t, err)

		assertDay(t, paid.NextDueDate, "2024-02-10")
		if paid.LastPaymentDate == nil {
			t.Fatal("expected last payment date")
		}
		assertDay(t, *paid.LastPaymentDate, "2024-01-25")

		reloaded, err := svc.GetCharge(ctx, charge.ID)
		testutil.AssertNoError(t, err)
		assertDay(t, reloaded.NextDueDate, "2024-02-10")
		assertDay(t, *reloaded.LastPaymentDate, "2024-01-25")
	})

	t.Run("custom_45_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-01"),
			testutil.WithPeriod(models.ChargePeriodCustom, 45))

		paid, err := svc.MarkPaid(ctx, charge.ID)
		testutil.AssertNoError(t, err)

		assertDay(t, paid.NextDueDate, "2024-04-15")
		assertDay(t, *paid.LastPaymentDate, "2024-03-01")
	})

	t.Run("quarterly_and_annual", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-05")
		quarterly := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-05"),
			testutil.WithPeriod(models.ChargePeriodQuarterly, 0))
		annual := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-05"),
			testutil.WithPeriod(models.ChargePeriodAnnual, 0))

		q, err := svc.MarkPaid(ctx, quarterly.ID)
		testutil.AssertNoError(t, err)
		assertDay(t, q.NextDueDate, "2024-04-05")

		a, err := svc.MarkPaid(ctx, annual.ID)
		testutil.AssertNoError(t, err)
		assertDay(t, a.NextDueDate, "2025-01-05")
	})

	t.Run("cancelled_charge", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-25")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-10"),
			testutil.WithCancelled(testutil.Day("2024-01-20"), "client left"))

		_, err := svc.MarkPaid(ctx, charge.ID)
		testutil.AssertAppError(t, err, "CHARGE_CANCELLED")

		reloaded, _ := svc.GetCharge(ctx, charge.ID)
		assertDay(t, reloaded.NextDueDate, "2024-01-10")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-25")

		_, err := svc.MarkPaid(ctx, "01900000-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "CHARGE_NOT_FOUND")
	})
}

func TestCancelCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_reason_leaves_charge_active", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")
		user := testutil.CreateTestUser(t, db, models.UserRoleAdmin)
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-03"))

		for _, reason := range []string{"", "   \t"} {
			_, err := svc.Cancel(ctx, user.ID, charge.ID, reason)
			testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		}

		reloaded, err := svc.GetCharge(ctx, charge.ID)
		testutil.AssertNoError(t, err)
		if reloaded.IsCancelled() {
			t.Error("expected charge to remain active")
		}
	})

	t.Run("moves_charge_to_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")
		user := testutil.CreateTestUser(t, db, models.UserRoleAdmin)
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-03"))

		cancelled, err := svc.Cancel(ctx, user.ID, charge.ID, "duplicate entry")
		testutil.AssertNoError(t, err)
		if cancelled.CancelledAt == nil || cancelled.CancelledBy == nil || *cancelled.CancelledBy != user.ID {
			t.Error("expected cancellation fields to be set")
		}
		if *cancelled.CancelledReason != "duplicate entry" {
			t.Errorf("expected reason 'duplicate entry', got %q", *cancelled.CancelledReason)
		}

		dueSoon, err := svc.ListDueSoon(ctx, schedule.ReminderWindowDays)
		testutil.AssertNoError(t, err)
		if len(dueSoon) != 0 {
			t.Errorf("expected cancelled charge out of due-soon, got %d", len(dueSoon))
		}

		active, err := svc.ListActiveCharges(ctx, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if active.TotalItems != 0 {
			t.Errorf("expected 0 active charges, got %d", active.TotalItems)
		}

		history, err := svc.ListCancelledCharges(ctx, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if history.TotalItems != 1 || history.Data[0].ID != charge.ID {
			t.Errorf("expected charge in history, got %+v", history.Data)
		}
	})

	t.Run("already_cancelled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-03"),
			testutil.WithCancelled(testutil.Day("2024-02-01"), "old"))

		_, err := svc.Cancel(ctx, "", charge.ID, "again")
		testutil.AssertAppError(t, err, "CHARGE_CANCELLED")
	})
}

func TestRestoreCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("active_charge", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-03"))

		_, err := svc.Restore(ctx, charge.ID)
		testutil.AssertAppError(t, err, "CHARGE_NOT_CANCELLED")
	})

	t.Run("reappears_with_unchanged_due_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")
		user := testutil.CreateTestUser(t, db, models.UserRoleAdmin)
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-03"))

		_, err := svc.Cancel(ctx, user.ID, charge.ID, "paused by client")
		testutil.AssertNoError(t, err)

		restored, err := svc.Restore(ctx, charge.ID)
		testutil.AssertNoError(t, err)
		if restored.CancelledAt != nil || restored.CancelledBy != nil || restored.CancelledReason != nil {
			t.Error("expected cancellation fields to be cleared")
		}

		reloaded, err := svc.GetCharge(ctx, charge.ID)
		testutil.AssertNoError(t, err)
		if reloaded.IsCancelled() || reloaded.CancelledReason != nil {
			t.Error("expected cleared cancellation fields in store")
		}

		dueSoon, err := svc.ListDueSoon(ctx, schedule.ReminderWindowDays)
		testutil.AssertNoError(t, err)
		if len(dueSoon) != 1 {
			t.Fatalf("expected restored charge in due-soon, got %d", len(dueSoon))
		}
		assertDay(t, dueSoon[0].NextDueDate, "2024-03-03")
	})
}

func TestPurgeCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("active_charge_must_be_cancelled_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-03"))

		err := svc.Purge(ctx, charge.ID)
		testutil.AssertAppError(t, err, "CHARGE_NOT_CANCELLED")

		_, err = svc.GetCharge(ctx, charge.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("cancelled_charge_is_removed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-03"),
			testutil.WithCancelled(testutil.Day("2024-02-01"), "duplicate entry"))

		testutil.AssertNoError(t, svc.Purge(ctx, charge.ID))

		var count int64
		db.Unscoped().Model(&models.RecurringCharge{}).Where("id = ?", charge.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected charge row to be gone, found %d", count)
		}

		_, err := svc.GetCharge(ctx, charge.ID)
		testutil.AssertAppError(t, err, "CHARGE_NOT_FOUND")
	})
}

func TestListDueSoon(t *testing.T) {
	ctx := context.Background()

	t.Run("window_is_inclusive_and_skips_overdue", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")

		today := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-01"))
		edge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-08"))
		testutil.CreateTestCharge(t, db, testutil.Day("2024-03-09"))
		testutil.CreateTestCharge(t, db, testutil.Day("2024-02-29"))

		charges, err := svc.ListDueSoon(ctx, schedule.ReminderWindowDays)
		testutil.AssertNoError(t, err)
		if len(charges) != 2 {
			t.Fatalf("expected 2 due-soon charges, got %d", len(charges))
		}
		if charges[0].ID != today.ID || charges[1].ID != edge.ID {
			t.Error("expected charges ordered by due date")
		}
	})

	t.Run("inactive_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")

		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-02"))
		db.Model(charge).Update("is_active", false)

		count, err := svc.CountDueSoon(ctx, schedule.ReminderWindowDays)
		testutil.AssertNoError(t, err)
		if count != 0 {
			t.Errorf("expected inactive charge excluded, got %d", count)
		}
	})

	t.Run("dashboard_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")

		testutil.CreateTestCharge(t, db, testutil.Day("2024-03-05"))
		testutil.CreateTestCharge(t, db, testutil.Day("2024-03-20"))
		testutil.CreateTestCharge(t, db, testutil.Day("2024-03-31"))
		testutil.CreateTestCharge(t, db, testutil.Day("2024-04-01"))

		short, err := svc.CountDueSoon(ctx, schedule.ReminderWindowDays)
		testutil.AssertNoError(t, err)
		long, err := svc.CountDueSoon(ctx, schedule.DashboardWindowDays)
		testutil.AssertNoError(t, err)
		if short != 1 || long != 3 {
			t.Errorf("expected 1 and 3, got %d and %d", short, long)
		}
	})

	t.Run("negative_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-03-01")

		_, err := svc.ListDueSoon(ctx, -1)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestDueSoonCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	clk := clock.NewFixed(testutil.Day("2024-01-08"))
	svc := NewRecurringChargeService(db, clk, cache.NewDueSoonCache(client, time.Minute))
	charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-10"))

	first, err := svc.ListDueSoon(ctx, schedule.ReminderWindowDays)
	testutil.AssertNoError(t, err)
	if len(first) != 1 {
		t.Fatalf("expected 1 due-soon charge, got %d", len(first))
	}
	if len(mr.Keys()) == 0 {
		t.Fatal("expected due-soon view to be cached")
	}

	_, err = svc.MarkPaid(ctx, charge.ID)
	testutil.AssertNoError(t, err)

	after, err := svc.ListDueSoon(ctx, schedule.ReminderWindowDays)
	testutil.AssertNoError(t, err)
	if len(after) != 0 {
		t.Errorf("expected paid charge to leave due-soon immediately, got %d", len(after))
	}
}

// racingCache runs beforeSet once, between the store read and the cache write.
type racingCache struct {
	cache.DueSoonCache
	beforeSet func()
}

func (c *racingCache) Set(ctx context.Context, windowDays int, day string, generation int64, charges []models.RecurringCharge) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	return c.DueSoonCache.Set(ctx, windowDays, day, generation, charges)
}

func TestDueSoonCache_PaymentDuringRead(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	racing := &racingCache{DueSoonCache: cache.NewDueSoonCache(client, time.Minute)}
	svc := NewRecurringChargeService(db, clock.NewFixed(testutil.Day("2024-01-08")), racing)
	charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-10"))

	racing.beforeSet = func() {
		if _, err := svc.MarkPaid(ctx, charge.ID); err != nil {
			t.Errorf("mark paid failed: %v", err)
		}
	}

	stale, err := svc.ListDueSoon(ctx, schedule.ReminderWindowDays)
	testutil.AssertNoError(t, err)
	if len(stale) != 1 {
		t.Fatalf("expected the in-flight read to see the unpaid charge, got %d", len(stale))
	}

	after, err := svc.ListDueSoon(ctx, schedule.ReminderWindowDays)
	testutil.AssertNoError(t, err)
	if len(after) != 0 {
		t.Errorf("expected paid charge to be gone on the next read, got %d", len(after))
	}
}

// cancelAfterNextLoad cancels chargeID straight in the store right after the
// next query on recurring_charges returns, so the service acts on a copy that
// was loaded while the charge was still active.
func cancelAfterNextLoad(t *testing.T, db *gorm.DB, chargeID string) {
	t.Helper()
	fired := false
	err := db.Callback().Query().After("gorm:query").Register("test:concurrent_cancel", func(tx *gorm.DB) {
		if fired || tx.Error != nil || tx.Statement.Table != "recurring_charges" {
			return
		}
		fired = true
		if err := db.Exec("UPDATE recurring_charges SET cancelled_at = ?, cancelled_reason = ? WHERE id = ?",
			testutil.Day("2024-01-20"), "cancelled elsewhere", chargeID).Error; err != nil {
			t.Errorf("concurrent cancel failed: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}
}

func TestLifecycle_CancelledWhileLoaded(t *testing.T) {
	ctx := context.Background()

	t.Run("mark_paid_does_not_roll_forward", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-25")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-10"))
		cancelAfterNextLoad(t, db, charge.ID)

		_, err := svc.MarkPaid(ctx, charge.ID)
		testutil.AssertAppError(t, err, "CHARGE_CANCELLED")

		reloaded, err := svc.GetCharge(ctx, charge.ID)
		testutil.AssertNoError(t, err)
		assertDay(t, reloaded.NextDueDate, "2024-01-10")
		if reloaded.LastPaymentDate != nil {
			t.Error("expected no payment recorded on a cancelled charge")
		}
	})

	t.Run("second_cancel_keeps_first_reason", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-25")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-10"))
		cancelAfterNextLoad(t, db, charge.ID)

		_, err := svc.Cancel(ctx, "", charge.ID, "duplicate entry")
		testutil.AssertAppError(t, err, "CHARGE_CANCELLED")

		reloaded, err := svc.GetCharge(ctx, charge.ID)
		testutil.AssertNoError(t, err)
		if reloaded.CancelledReason == nil || *reloaded.CancelledReason != "cancelled elsewhere" {
			t.Errorf("expected original cancellation to stand, got %v", reloaded.CancelledReason)
		}
	})

	t.Run("update_is_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newChargeService(db, "2024-01-25")
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-01-10"))
		cancelAfterNextLoad(t, db, charge.ID)

		desc := "Renamed"
		_, err := svc.UpdateCharge(ctx, charge.ID, ChargeUpdate{Description: &desc})
		testutil.AssertAppError(t, err, "CHARGE_CANCELLED")
	})
}
