package story

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/contosparadormir/contos/internal/store"
	"github.com/contosparadormir/contos/internal/validation"
)

// Service validates story input and orchestrates the document store.
type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// List returns all stories, newest first. Stories sharing a createdAt keep
// the store's iteration order, which is unspecified.
func (s *Service) List(ctx context.Context) ([]*Story, error) {
	snaps, err := s.store.List(ctx, store.Stories)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	out := make([]*Story, 0, len(snaps))
	for _, snap := range snaps {
		st, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// Get returns store.ErrNotFound when the id does not resolve.
func (s *Service) Get(ctx context.Context, id string) (*Story, error) {
	snap, err := s.store.Get(ctx, store.Stories, id)
	if err != nil {
		return nil, fmt.Errorf("get story %s: %w", id, err)
	}
	return decode(snap)
}

// Create validates in, stamps createdAt = updatedAt = now and persists a new
// story. Identical submissions create distinct stories.
func (s *Service) Create(ctx context.Context, in Input) (*Story, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := s.now().UnixMilli()
	st := &Story{
		Title:         in.Title,
		Content:       in.Content,
		CoverImageURL: in.CoverImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	id, err := s.store.Add(ctx, store.Stories, st)
	if err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	st.ID = id
	return st, nil
}

// Update replaces title, content and cover of an existing story. The
// existence check happens before any write; createdAt is preserved.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Story, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UnixMilli()
	if now < cur.UpdatedAt {
		now = cur.UpdatedAt
	}
	patch := struct {
		Input     `bson:",inline"`
		UpdatedAt int64 `bson:"updatedAt"`
	}{in, now}
	if err := s.store.Update(ctx, store.Stories, id, patch); err != nil {
		return nil, fmt.Errorf("update story %s: %w", id, err)
	}
	return &Story{
		ID:            id,
		Title:         in.Title,
		Content:       in.Content,
		CoverImageURL: in.CoverImageURL,
		CreatedAt:     cur.CreatedAt,
		UpdatedAt:     now,
	}, nil
}

// Delete returns store.ErrNotFound when the id does not resolve.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, store.Stories, id); err != nil {
		return fmt.Errorf("delete story %s: %w", id, err)
	}
	if err := s.store.Delete(ctx, store.Stories, id); err != nil {
		return fmt.Errorf("delete story %s: %w", id, err)
	}
	return nil
}

func decode(snap *store.Snapshot) (*Story, error) {
	var st Story
	if err := snap.DataTo(&st); err != nil {
		return nil, err
	}
	st.ID = snap.ID
	return &st, nil
}
