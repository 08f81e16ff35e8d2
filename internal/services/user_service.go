package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/models"
)

// userService reads the user mirror. Users are provisioned by the auth
// provider, so there is no create or credential path here.
type userService struct {
	db             *gorm.DB
	financialRoles map[string]struct{}
}

// NewUserService creates a new UserServicer. financialRoles lists the roles
// entitled to see financial data and receive charge reminders.
func NewUserService(db *gorm.DB, financialRoles []string) UserServicer {
	roles := make(map[string]struct{}, len(financialRoles))
	for _, r := range financialRoles {
		roles[r] = struct{}{}
	}
	return &userService{db: db, financialRoles: roles}
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "User not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &user, nil
}

// HasFinancialRole reports whether role is one of the configured financial roles.
func (s *userService) HasFinancialRole(role string) bool {
	_, ok := s.financialRoles[role]
	return ok
}

// FinancialRecipients returns the IDs of active users holding a financial role.
func (s *userService) FinancialRecipients(ctx context.Context) ([]string, error) {
	if len(s.financialRoles) == 0 {
		return nil, nil
	}
	roles := make([]string, 0, len(s.financialRoles))
	for r := range s.financialRoles {
		roles = append(roles, r)
	}

	var ids []string
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("role IN ? AND is_active = ?", roles, true).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return ids, nil
}
