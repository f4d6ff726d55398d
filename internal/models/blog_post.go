package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost body is markdown; HTML is rendered on read.
type BlogPost struct {
	ID          string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                      `json:"title"`
	Slug        string                      `gorm:"size:191;uniqueIndex" json:"slug"`
	Excerpt     string                      `gorm:"type:text" json:"excerpt"`
	Content     string                      `gorm:"type:text" json:"content"`
	CoverImage  string                      `json:"coverImage"`
	Author      string                      `json:"author"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Published   bool                        `gorm:"index" json:"published"`
	PublishedAt *time.Time                  `gorm:"index" json:"publishedAt,omitempty"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
