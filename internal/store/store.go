package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Collection names used by the site.
const (
	Stories = "stories"
	Music   = "music"
	Site    = "site"
)

// Snapshot is a single stored document. The payload stays encoded until a
// caller decodes it into its own type with DataTo.
type Snapshot struct {
	ID  string
	raw bson.Raw
}

// NewSnapshot wraps an encoded document.
func NewSnapshot(id string, raw bson.Raw) *Snapshot {
	return &Snapshot{ID: id, raw: raw}
}

// DataTo decodes the document fields into v (a pointer to a struct or map).
func (s *Snapshot) DataTo(v interface{}) error {
	if err := bson.Unmarshal(s.raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", s.ID, err)
	}
	return nil
}

// Store is the document store contract: collection-scoped CRUD with no
// cross-collection transactions. Documents are any value encodable as a
// BSON document (structs with bson tags, bson.M).
type Store interface {
	// Get returns ErrNotFound when no document has the id.
	Get(ctx context.Context, collection, id string) (*Snapshot, error)
	// List returns every document of the collection in store order.
	List(ctx context.Context, collection string) ([]*Snapshot, error)
	// Add stores doc under a new store-generated id and returns the id.
	Add(ctx context.Context, collection string, doc interface{}) (string, error)
	// Update overwrites the fields present in patch; ErrNotFound when absent.
	Update(ctx context.Context, collection, id string, patch interface{}) error
	// Set writes doc under id, creating it when absent. With merge the
	// fields of doc are merged into an existing document; otherwise the
	// document is replaced.
	Set(ctx context.Context, collection, id string, doc interface{}, merge bool) error
	// Delete removes the document; ErrNotFound when absent.
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
}

// toMap encodes doc into a generic document so that backends can add or
// merge fields. Fields tagged omitempty that are unset do not appear.
func toMap(doc interface{}) (bson.M, error) {
	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(m, "_id")
	return m, nil
}
