package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
)

// ContactLead is a message submitted through the public contact form.
type ContactLead struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Reference string    `gorm:"size:16;uniqueIndex" json:"reference"`
	Name      string    `json:"name"`
	Email     string    `gorm:"index" json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Service   string    `json:"service"`
	Budget    string    `json:"budget"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"size:32;index;default:new" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *ContactLead) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	return nil
}
