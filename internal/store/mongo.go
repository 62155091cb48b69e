package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB database. Each logical collection
// maps to a Mongo collection of the same name. Documents written here get a
// string _id; documents inserted by other Mongo clients usually carry an
// ObjectID, which is exposed as its hex string.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (m *MongoStore) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	raw, err := m.db.Collection(collection).FindOne(ctx, idFilter(id)).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return NewSnapshot(id, raw), nil
}

func (m *MongoStore) List(ctx context.Context, collection string) ([]*Snapshot, error) {
	cur, err := m.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Snapshot{}
	for cur.Next(ctx) {
		id, err := docID(cur.Current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", collection, err)
		}
		// cur.Current is reused by the next call to Next
		raw := make(bson.Raw, len(cur.Current))
		copy(raw, cur.Current)
		out = append(out, NewSnapshot(id, raw))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoStore) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	fields, err := toMap(doc)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	fields["_id"] = id
	if _, err := m.db.Collection(collection).InsertOne(ctx, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (m *MongoStore) Update(ctx context.Context, collection, id string, patch interface{}) error {
	fields, err := toMap(patch)
	if err != nil {
		return err
	}
	res, err := m.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) Set(ctx context.Context, collection, id string, doc interface{}, merge bool) error {
	fields, err := toMap(doc)
	if err != nil {
		return err
	}
	col := m.db.Collection(collection)
	if merge {
		_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, options.Update().SetUpsert(true))
		return err
	}
	_, err = col.ReplaceOne(ctx, bson.M{"_id": id}, fields, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := m.db.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

// idFilter matches id stored as a string, or as an ObjectID when id is its
// hex form.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

// docID returns the API id of a stored document.
func docID(doc bson.Raw) (string, error) {
	v, err := doc.LookupErr("_id")
	if err != nil {
		return "", fmt.Errorf("document without _id: %w", err)
	}
	switch v.Type {
	case bsontype.String:
		return v.StringValue(), nil
	case bsontype.ObjectID:
		return v.ObjectID().Hex(), nil
	}
	return "", fmt.Errorf("unsupported _id type %s", v.Type)
}
