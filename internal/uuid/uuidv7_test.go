package uuid

import (
	"testing"
	"time"
)

func TestNewAt(t *testing.T) {
	t.Run("valid_v7", func(t *testing.T) {
		id := NewAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		if !IsValid(id) {
			t.Fatalf("expected valid uuid, got %q", id)
		}
		if id[14] != '7' {
			t.Errorf("expected version 7, got %q", id)
		}
	})

	t.Run("time_ordered", func(t *testing.T) {
		earlier := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		later := NewAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		if earlier >= later {
			t.Errorf("expected %s < %s", earlier, later)
		}
	})
}

func TestIsValid(t *testing.T) {
	if IsValid("not-a-uuid") {
		t.Error("expected invalid uuid to be rejected")
	}
	if !IsValid(New()) {
		t.Error("expected generated uuid to be valid")
	}
}
