package models

import (
	"time"
)

// User is a dashboard account. Only admins and editors exist.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex"`
	FullName  string
	Email     string `gorm:"uniqueIndex"`
	Password  string `json:"-"`
	Role      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
