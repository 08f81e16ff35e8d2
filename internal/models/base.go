package models

import (
	"time"

	"gorm.io/gorm"

	"projectdesk/internal/uuid"
)

// Base is embedded by every table: a time-ordered key, timestamps and the
// soft-delete column gorm filters on.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUIDv7 unless one was supplied, as fixtures do.
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID != "" {
		return nil
	}
	b.ID = uuid.New()
	return nil
}

// IsDeleted reports whether the row is soft-deleted.
func (b *Base) IsDeleted() bool {
	return b.DeletedAt.Valid
}
