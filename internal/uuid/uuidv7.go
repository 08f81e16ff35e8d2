// Package uuid generates time-ordered identifiers for primary keys.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 for the current instant.
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a UUIDv7 whose 48-bit millisecond prefix is taken from t,
// so rows created later sort after rows created earlier.
func NewAt(t time.Time) string {
	var id googleuuid.UUID

	binary.BigEndian.PutUint64(id[0:8], uint64(t.UnixMilli())<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		return googleuuid.New().String()
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
