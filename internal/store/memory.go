package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore is an in-process Store used for development and tests.
// Documents are kept BSON-encoded so callers never share mutable state with
// the store, matching what a remote store hands back.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]map[string]bson.Raw
	newID func() string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string]map[string]bson.Raw),
		newID: func() string { return uuid.New().String() },
	}
}

func (m *MemoryStore) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if raw, ok := m.store[collection][id]; ok {
		return NewSnapshot(id, raw), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) List(ctx context.Context, collection string) ([]*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := m.store[collection]
	out := make([]*Snapshot, 0, len(docs))
	for id, raw := range docs {
		out = append(out, NewSnapshot(id, raw))
	}
	return out, nil
}

func (m *MemoryStore) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	fields, err := toMap(doc)
	if err != nil {
		return "", err
	}
	raw, err := bson.Marshal(fields)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.newID()
	m.collection(collection)[id] = raw
	return id, nil
}

func (m *MemoryStore) Update(ctx context.Context, collection, id string, patch interface{}) error {
	fields, err := toMap(patch)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[collection][id]
	if !ok {
		return ErrNotFound
	}
	return m.merge(collection, id, cur, fields)
}

func (m *MemoryStore) Set(ctx context.Context, collection, id string, doc interface{}, merge bool) error {
	fields, err := toMap(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[collection][id]
	if merge && ok {
		return m.merge(collection, id, cur, fields)
	}
	raw, err := bson.Marshal(fields)
	if err != nil {
		return err
	}
	m.collection(collection)[id] = raw
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.store[collection], id)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// collection returns the document map for name, creating it. Caller holds mu.
func (m *MemoryStore) collection(name string) map[string]bson.Raw {
	docs, ok := m.store[name]
	if !ok {
		docs = make(map[string]bson.Raw)
		m.store[name] = docs
	}
	return docs
}

// merge overlays fields onto the encoded document cur. Caller holds mu.
func (m *MemoryStore) merge(collection, id string, cur bson.Raw, fields bson.M) error {
	var existing bson.M
	if err := bson.Unmarshal(cur, &existing); err != nil {
		return err
	}
	for k, v := range fields {
		existing[k] = v
	}
	raw, err := bson.Marshal(existing)
	if err != nil {
		return err
	}
	m.collection(collection)[id] = raw
	return nil
}
