package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/logger"
	"projectdesk/internal/models"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends an entry to the audit trail. The write is detached from ctx
// cancellation: the audited action already happened, so a client hanging up
// must not drop its record. Failures are logged only.
func (s *auditService) Log(ctx context.Context, actorID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	log := logger.Named("audit")

	entry := &models.AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			log.Errorw("unencodable audit changes", "error", err, "action", action)
			data = []byte("{}")
		}
		entry.Changes = string(data)
	}

	if err := s.db.WithContext(context.WithoutCancel(ctx)).Create(entry).Error; err != nil {
		log.Errorw("audit entry lost",
			"error", err,
			"actor_id", actorID,
			"action", action,
			"resource", resourceType+"/"+resourceID,
		)
	}
}

// ListForResource returns a resource's audit trail, oldest first.
func (s *auditService) ListForResource(ctx context.Context, resourceType, resourceID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := s.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return entries, nil
}
