package content

import (
	"context"
	"errors"
	"time"

	"github.com/zaqqye/agency_backend/internal/models"
)

var (
	ErrNotFound       = errors.New("content section not found")
	ErrInvalidSection = errors.New("invalid section key")
	ErrInvalidField   = errors.New("invalid field")
)

// Store persists ContentSection documents, one per section key.
type Store interface {
	// Find returns ErrNotFound when no document exists for section.
	Find(ctx context.Context, section string) (*models.ContentSection, error)
	// List returns every stored section ordered by key.
	List(ctx context.Context) ([]models.ContentSection, error)
	// Upsert creates the section with exactly fields or shallow-merges fields
	// into the existing document, atomically, and returns the result.
	Upsert(ctx context.Context, section string, fields Fields, now time.Time) (*models.ContentSection, error)
	Close(ctx context.Context) error
}
