package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zaqqye/agency_backend/internal/models"
)

// SQLStore keeps sections in the content_sections table, fields in a JSON column.
type SQLStore struct {
	DB *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Find(ctx context.Context, section string) (*models.ContentSection, error) {
	var rec models.ContentSection
	if err := s.DB.WithContext(ctx).Where("section = ?", section).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find section %q: %w", section, err)
	}
	return &rec, nil
}

func (s *SQLStore) List(ctx context.Context) ([]models.ContentSection, error) {
	var recs []models.ContentSection
	if err := s.DB.WithContext(ctx).Order("section ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return recs, nil
}

// Upsert inserts an empty row if the key is new, then locks the row and
// merges fields into it, all inside one transaction.
func (s *SQLStore) Upsert(ctx context.Context, section string, fields Fields, now time.Time) (*models.ContentSection, error) {
	var rec models.ContentSection
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.ContentSection{
			Section:   section,
			Fields:    datatypes.JSONMap{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "section"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("section = ?", section).
			First(&rec).Error; err != nil {
			return err
		}
		rec.Fields = shallowMerge(rec.Fields, fields)
		rec.UpdatedAt = now
		return tx.Model(&models.ContentSection{}).
			Where("section = ?", section).
			Updates(map[string]any{"fields": rec.Fields, "updated_at": now}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert section %q: %w", section, err)
	}
	return &rec, nil
}

// Close is a no-op; the *gorm.DB is shared and closed by its owner.
func (s *SQLStore) Close(context.Context) error { return nil }
