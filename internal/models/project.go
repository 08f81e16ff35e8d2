package models

// ProjectStatus represents where a project is in its delivery
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project is the client engagement that charges and payments can be attached to
type Project struct {
	Base
	Name       string        `gorm:"not null" json:"name"`
	ClientName string        `json:"client_name"`
	Status     ProjectStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}
