package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PricingPlan struct {
	ID          string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                      `gorm:"uniqueIndex" json:"name"`
	Price       string                      `json:"price"`
	Period      string                      `json:"period"`
	Description string                      `gorm:"type:text" json:"description"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	Highlighted bool                        `json:"highlighted"`
	Order       int                         `gorm:"column:sort_order;index" json:"order"`
	Active      bool                        `gorm:"not null" json:"active"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (p *PricingPlan) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
