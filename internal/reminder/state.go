package reminder

import (
	"time"

	"projectdesk/internal/schedule"
)

// OccurrenceKey identifies one due-date occurrence of a charge.
func OccurrenceKey(chargeID string, due time.Time) string {
	return chargeID + "-" + schedule.FormatISO(due)
}

// HandledSet remembers, per recipient, which occurrences were already
// resolved (found or inserted) so later passes in the same process can skip
// the store round trip. Losing it is harmless; the store check re-derives it.
//
// A HandledSet is not safe for concurrent use. The Poller serializes passes.
type HandledSet struct {
	byRecipient map[string]map[string]struct{}
}

// NewHandledSet returns an empty set.
func NewHandledSet() *HandledSet {
	return &HandledSet{byRecipient: make(map[string]map[string]struct{})}
}

// Has reports whether key was handled for recipient.
func (h *HandledSet) Has(recipient, key string) bool {
	_, ok := h.byRecipient[recipient][key]
	return ok
}

// Mark records key as handled for recipient.
func (h *HandledSet) Mark(recipient, key string) {
	keys, ok := h.byRecipient[recipient]
	if !ok {
		keys = make(map[string]struct{})
		h.byRecipient[recipient] = keys
	}
	keys[key] = struct{}{}
}

// Retain drops every key not in current and returns how many were dropped.
func (h *HandledSet) Retain(current map[string]struct{}) int {
	pruned := 0
	for recipient, keys := range h.byRecipient {
		for key := range keys {
			if _, ok := current[key]; !ok {
				delete(keys, key)
				pruned++
			}
		}
		if len(keys) == 0 {
			delete(h.byRecipient, recipient)
		}
	}
	return pruned
}

// Len returns the number of tracked (recipient, key) pairs.
func (h *HandledSet) Len() int {
	n := 0
	for _, keys := range h.byRecipient {
		n += len(keys)
	}
	return n
}
