package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeamMember struct {
	ID          string            `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string            `json:"name"`
	Role        string            `json:"role"`
	Bio         string            `gorm:"type:text" json:"bio"`
	Image       string            `json:"image"`
	SocialLinks datatypes.JSONMap `json:"socialLinks"`
	Order       int               `gorm:"column:sort_order;index" json:"order"`
	Active      bool              `gorm:"not null" json:"active"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
