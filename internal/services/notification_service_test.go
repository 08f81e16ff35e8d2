package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"projectdesk/internal/models"
	"projectdesk/internal/pagination"
	"projectdesk/internal/testutil"
)

func createNotification(t *testing.T, db *gorm.DB, userID, chargeID string, due *time.Time, message string) *models.Notification {
	t.Helper()
	n := &models.Notification{
		UserID:         userID,
		Type:           models.NotificationRecurringChargeDueSoon,
		Title:          "Recurring charge due",
		Message:        message,
		EntityType:     models.EntityRecurringCharge,
		EntityID:       chargeID,
		OccurrenceDate: due,
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}
	return n
}

func TestHasOccurrence(t *testing.T) {
	ctx := context.Background()

	t.Run("structured_occurrence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNotificationService(db)
		user := testutil.CreateTestUser(t, db, models.UserRoleAdmin)
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-05"))
		due := testutil.Day("2024-03-05")
		createNotification(t, db, user.ID, charge.ID, &due, "Hosting is due on Mar 5, 2024.")

		found, err := svc.HasOccurrence(ctx, user.ID, models.NotificationRecurringChargeDueSoon, charge.ID, due)
		testutil.AssertNoError(t, err)
		if !found {
			t.Error("expected occurrence to be found")
		}

		found, err = svc.HasOccurrence(ctx, user.ID, models.NotificationRecurringChargeDueSoon, charge.ID, testutil.Day("2024-04-05"))
		testutil.AssertNoError(t, err)
		if found {
			t.Error("expected next occurrence to be unnotified")
		}

		found, err = svc.HasOccurrence(ctx, user.ID, models.NotificationRecurringExpenseDueSoon, charge.ID, due)
		testutil.AssertNoError(t, err)
		if found {
			t.Error("expected type to be part of the match")
		}
	})

	t.Run("legacy_row_matched_on_message", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNotificationService(db)
		user := testutil.CreateTestUser(t, db, models.UserRoleAdvisor)
		charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-05"))
		createNotification(t, db, user.ID, charge.ID, nil, "Hosting (100.00) is due in 4 days, on Mar 5, 2024.")

		found, err := svc.HasOccurrence(ctx, user.ID, models.NotificationRecurringChargeDueSoon, charge.ID, testutil.Day("2024-03-05"))
		testutil.AssertNoError(t, err)
		if !found {
			t.Error("expected legacy notification to count")
		}
	})
}

func TestInsertNotification(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)
	user := testutil.CreateTestUser(t, db, models.UserRoleAdmin)
	charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-05"))
	due := testutil.Day("2024-03-05")

	build := func() *models.Notification {
		return &models.Notification{
			UserID:         user.ID,
			Type:           models.NotificationRecurringChargeDueSoon,
			Title:          "due",
			Message:        "due on Mar 5, 2024",
			EntityType:     models.EntityRecurringCharge,
			EntityID:       charge.ID,
			OccurrenceDate: &due,
		}
	}

	t.Run("first_insert_creates", func(t *testing.T) {
		created, err := svc.Insert(ctx, build())
		testutil.AssertNoError(t, err)
		if !created {
			t.Error("expected notification to be created")
		}
	})

	t.Run("duplicate_occurrence_is_not_an_error", func(t *testing.T) {
		created, err := svc.Insert(ctx, build())
		testutil.AssertNoError(t, err)
		if created {
			t.Error("expected duplicate to be rejected by the unique index")
		}

		var count int64
		db.Model(&models.Notification{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 notification, got %d", count)
		}
	})
}

func TestNotificationReadState(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)
	user := testutil.CreateTestUser(t, db, models.UserRoleAdmin)
	other := testutil.CreateTestUser(t, db, models.UserRoleAdmin)
	charge := testutil.CreateTestCharge(t, db, testutil.Day("2024-03-05"))

	n1 := createNotification(t, db, user.ID, charge.ID, nil, "one")
	createNotification(t, db, user.ID, charge.ID, nil, "two")
	createNotification(t, db, other.ID, charge.ID, nil, "other")

	t.Run("unread_count", func(t *testing.T) {
		count, err := svc.UnreadCount(ctx, user.ID)
		testutil.AssertNoError(t, err)
		if count != 2 {
			t.Errorf("expected 2 unread, got %d", count)
		}
	})

	t.Run("mark_read_is_scoped_to_owner", func(t *testing.T) {
		err := svc.MarkRead(ctx, other.ID, n1.ID)
		testutil.AssertAppError(t, err, "NOTIFICATION_NOT_FOUND")

		testutil.AssertNoError(t, svc.MarkRead(ctx, user.ID, n1.ID))
		unread, err := svc.ListForUser(ctx, user.ID, true, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if unread.TotalItems != 1 {
			t.Errorf("expected 1 unread after mark read, got %d", unread.TotalItems)
		}
	})

	t.Run("mark_all_read", func(t *testing.T) {
		n, err := svc.MarkAllRead(ctx, user.ID)
		testutil.AssertNoError(t, err)
		if n != 1 {
			t.Errorf("expected 1 row updated, got %d", n)
		}
		count, _ := svc.UnreadCount(ctx, other.ID)
		if count != 1 {
			t.Errorf("expected other user's notification untouched, got %d unread", count)
		}
	})
}
