package models

import "time"

// Role is an access level for API accounts. The seeded roles are
// "administrator" and "user"; new registrations get "user".
type Role struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:32;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
}
