package story

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/contosparadormir/contos/internal/store"
	"github.com/contosparadormir/contos/internal/validation"
	"github.com/stretchr/testify/require"
)

// clock hands out strictly increasing instants.
type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

func newTestService() (*Service, *store.MemoryStore, *clock) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	c := &clock{t: time.UnixMilli(1_700_000_000_000)}
	svc.now = c.now
	return svc, st, c
}

// countingStore records mutations to check that rejected calls never write.
type countingStore struct {
	store.Store
	writes int
}

func (c *countingStore) Add(ctx context.Context, col string, doc interface{}) (string, error) {
	c.writes++
	return c.Store.Add(ctx, col, doc)
}

func (c *countingStore) Update(ctx context.Context, col, id string, patch interface{}) error {
	c.writes++
	return c.Store.Update(ctx, col, id, patch)
}

func (c *countingStore) Delete(ctx context.Context, col, id string) error {
	c.writes++
	return c.Store.Delete(ctx, col, id)
}

var valid = Input{Title: "A", Content: "B", CoverImageURL: "http://x/y.png"}

func TestCreateThenGet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, valid)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCreate_NotIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	a, err := svc.Create(ctx, valid)
	require.NoError(t, err)
	b, err := svc.Create(ctx, valid)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestCreate_ValidationError(t *testing.T) {
	cs := &countingStore{Store: store.NewMemoryStore()}
	svc := NewService(cs)

	_, err := svc.Create(context.Background(), Input{Title: "A"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "content")
	require.Contains(t, verr.Fields, "coverImageUrl")
	require.NotContains(t, verr.Fields, "title")
	require.Zero(t, cs.writes)
}

func TestUpdate_PreservesCreatedAtAndAdvancesUpdatedAt(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, valid)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Input{Title: "A2", Content: "B2", CoverImageURL: "http://x/z.png"})
	require.NoError(t, err)
	require.Equal(t, "A2", updated.Title)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Greater(t, updated.UpdatedAt, created.UpdatedAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func TestUpdate_ClockSkewNeverMovesUpdatedAtBackwards(t *testing.T) {
	svc, _, c := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, valid)
	require.NoError(t, err)

	c.t = c.t.Add(-time.Hour)
	updated, err := svc.Update(ctx, created.ID, valid)
	require.NoError(t, err)
	require.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)
}

func TestUpdate_Missing(t *testing.T) {
	cs := &countingStore{Store: store.NewMemoryStore()}
	svc := NewService(cs)

	_, err := svc.Update(context.Background(), "nope", valid)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.Zero(t, cs.writes)
}

func TestUpdate_ValidationBeforeExistence(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Update(context.Background(), "nope", Input{})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)
}

func TestDeleteThenGet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, valid)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, created.ID), store.ErrNotFound)
}

func TestList_SortedNewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, valid)
		require.NoError(t, err)
	}
	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i := 1; i < len(list); i++ {
		require.Greater(t, list[i-1].CreatedAt, list[i].CreatedAt)
	}
}

type failingStore struct{ store.Store }

func (failingStore) List(ctx context.Context, col string) ([]*store.Snapshot, error) {
	return nil, errors.New("connection reset")
}

func TestList_StoreError(t *testing.T) {
	svc := NewService(failingStore{Store: store.NewMemoryStore()})
	_, err := svc.List(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrNotFound)
}
