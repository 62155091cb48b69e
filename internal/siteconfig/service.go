package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contosparadormir/contos/internal/store"
)

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Load reads the stored document. found is false when no config has ever
// been written; the store is not touched in that case.
func (s *Service) Load(ctx context.Context) (p Patch, found bool, err error) {
	snap, err := s.store.Get(ctx, store.Site, DocumentID)
	if errors.Is(err, store.ErrNotFound) {
		return Patch{}, false, nil
	}
	if err != nil {
		return Patch{}, false, fmt.Errorf("get site config: %w", err)
	}
	if err := snap.DataTo(&p); err != nil {
		return Patch{}, false, err
	}
	return p, true, nil
}

// Get returns the stored config with defaults filling any field that was
// never written, or the pure defaults when nothing is stored.
func (s *Service) Get(ctx context.Context) (SiteConfig, error) {
	p, found, err := s.Load(ctx)
	if err != nil {
		return SiteConfig{}, err
	}
	if !found {
		return Defaults(), nil
	}
	return p.ApplyTo(Defaults()), nil
}

// Update merges the fields present in p into the stored document and
// refreshes updatedAt. No validation is applied to the values.
func (s *Service) Update(ctx context.Context, p Patch) error {
	now := s.now().UnixMilli()
	p.UpdatedAt = &now
	if err := s.store.Set(ctx, store.Site, DocumentID, p, true); err != nil {
		return fmt.Errorf("update site config: %w", err)
	}
	return nil
}
