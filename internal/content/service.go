package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/models"
)

// Service resolves and writes content sections.
type Service struct {
	store    Store
	defaults *Defaults
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithDefaults(d *Defaults) Option {
	return func(s *Service) { s.defaults = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		defaults: BuiltinDefaults(),
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the stored fields of section verbatim. A section that was
// never written resolves to an empty mapping.
func (s *Service) Resolve(ctx context.Context, section string) (Fields, error) {
	section = strings.TrimSpace(section)
	rec, err := s.store.Find(ctx, section)
	if errors.Is(err, ErrNotFound) {
		return Fields{}, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.Fields == nil {
		return Fields{}, nil
	}
	return Fields(rec.Fields), nil
}

// Find returns the whole document, or nil when the section was never written.
func (s *Service) Find(ctx context.Context, section string) (*models.ContentSection, error) {
	rec, err := s.store.Find(ctx, strings.TrimSpace(section))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// ResolveAll returns every stored section.
func (s *Service) ResolveAll(ctx context.Context) ([]models.ContentSection, error) {
	return s.store.List(ctx)
}

// Upsert merges fields into section, creating it on first write.
func (s *Service) Upsert(ctx context.Context, section string, fields Fields) (*models.ContentSection, error) {
	section = strings.TrimSpace(section)
	if err := validateSection(section); err != nil {
		return nil, err
	}
	cleaned, err := clean(fields)
	if err != nil {
		return nil, err
	}
	normalized, err := normalize(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	if err := checkFields(section, normalized); err != nil {
		return nil, err
	}

	rec, err := s.store.Upsert(ctx, section, normalized, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("content section saved",
		zap.String("section", section),
		zap.Int("fields", len(normalized)),
	)
	return rec, nil
}

// ResolveWithDefaults returns render-ready fields: stored values backfilled
// with the section defaults. It never fails; a store error yields the
// defaults alone.
func (s *Service) ResolveWithDefaults(ctx context.Context, section string) Fields {
	resolved, err := s.Resolve(ctx, section)
	if err != nil {
		s.logger.Warn("content resolve failed, rendering defaults",
			zap.String("section", section),
			zap.Error(err),
		)
		resolved = nil
	}
	return Merge(s.defaults.For(section), resolved)
}

// Defaults exposes the fallback table.
func (s *Service) Defaults() *Defaults {
	return s.defaults
}

func validateSection(section string) error {
	err := validation.Validate(section,
		validation.Required.Error("section is required"),
		validation.RuneLength(1, 128).Error("section must be at most 128 characters"),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSection, err)
	}
	return nil
}
