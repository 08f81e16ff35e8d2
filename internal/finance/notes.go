package finance

import (
	"regexp"
	"strings"
)

var cancellationMarker = regexp.MustCompile(`\[cancellation_reason: ([^\]]*)\]`)

// WithCancellationReason returns notes carrying a single cancellation marker.
// An existing marker is replaced; other note text is kept.
func WithCancellationReason(notes, reason string) string {
	marker := "[cancellation_reason: " + strings.ReplaceAll(strings.TrimSpace(reason), "]", ")") + "]"
	if cancellationMarker.MatchString(notes) {
		return cancellationMarker.ReplaceAllLiteralString(notes, marker)
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return marker
	}
	return notes + "\n" + marker
}

// CancellationReason extracts the reason recorded by WithCancellationReason.
func CancellationReason(notes string) (string, bool) {
	m := cancellationMarker.FindStringSubmatch(notes)
	if m == nil {
		return "", false
	}
	return m[1], true
}
