package models

// UserRole is the role assigned by the hosted auth provider.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleAdvisor UserRole = "advisor"
	UserRoleMember  UserRole = "member"
	UserRoleClient  UserRole = "client"
)

// User mirrors the auth provider's user profile. Credentials never live here.
type User struct {
	Base
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'member';index" json:"role"`
	IsActive bool     `gorm:"default:true" json:"is_active"`
}
