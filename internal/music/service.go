package music

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/contosparadormir/contos/internal/store"
	"github.com/contosparadormir/contos/internal/validation"
)

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service { return &Service{store: s} }

// List returns all tracks, most recently uploaded first.
func (s *Service) List(ctx context.Context) ([]*Music, error) {
	snaps, err := s.store.List(ctx, store.Music)
	if err != nil {
		return nil, fmt.Errorf("list music: %w", err)
	}
	out := make([]*Music, 0, len(snaps))
	for _, snap := range snaps {
		var m Music
		if err := snap.DataTo(&m); err != nil {
			return nil, err
		}
		m.ID = snap.ID
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt > out[j].UploadedAt })
	return out, nil
}

// Delete returns store.ErrNotFound when the id does not resolve.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, store.Music, id); err != nil {
		return fmt.Errorf("delete music %s: %w", id, err)
	}
	if err := s.store.Delete(ctx, store.Music, id); err != nil {
		return fmt.Errorf("delete music %s: %w", id, err)
	}
	return nil
}

// Import writes a track record directly into the store. It backs the
// music-import command; there is no HTTP route for it.
func Import(ctx context.Context, s store.Store, name, url string, at time.Time) (*Music, error) {
	m := &Music{Name: name, URL: url, UploadedAt: at.UnixMilli()}
	if err := validation.Struct(m); err != nil {
		return nil, err
	}
	id, err := s.Add(ctx, store.Music, m)
	if err != nil {
		return nil, fmt.Errorf("import music: %w", err)
	}
	m.ID = id
	return m, nil
}
