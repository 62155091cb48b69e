package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get found", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contos.stories", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "s1"}, {Key: "title", Value: "A"}, {Key: "createdAt", Value: int64(5)}}))

		snap, err := s.Get(ctx, Stories, "s1")
		require.NoError(mt, err)
		require.Equal(mt, "s1", snap.ID)
		var got testDoc
		require.NoError(mt, snap.DataTo(&got))
		require.Equal(mt, "A", got.Title)
		require.Equal(mt, int64(5), got.CreatedAt)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contos.stories", mtest.FirstBatch))

		_, err := s.Get(ctx, Stories, "nope")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contos.music", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "m1"}, {Key: "name", Value: "one"}},
			bson.D{{Key: "_id", Value: "m2"}, {Key: "name", Value: "two"}},
		))

		list, err := s.List(ctx, Music)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		require.Equal(mt, "m1", list[0].ID)
		require.Equal(mt, "m2", list[1].ID)
		var m bson.M
		require.NoError(mt, list[1].DataTo(&m))
		require.Equal(mt, "two", m["name"])
	})

	mt.Run("add", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := s.Add(ctx, Stories, testDoc{Title: "x"})
		require.NoError(mt, err)
		require.NotEmpty(mt, id)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := s.Update(ctx, Stories, "nope", bson.M{"title": "x"})
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(mt, s.Update(ctx, Stories, "s1", bson.M{"title": "x"}))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		require.ErrorIs(mt, s.Delete(ctx, Music, "nope"), ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, s.Delete(ctx, Music, "m1"))
	})

	mt.Run("set merge upserts", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, s.Set(ctx, Site, "config", bson.M{"heroTitle": "X"}, true))
	})

	mt.Run("command error surfaces", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Message: "boom"}))

		_, err := s.Add(ctx, Stories, testDoc{Title: "x"})
		require.Error(mt, err)
	})

	mt.Run("list exposes ObjectID as hex", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contos.music", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "name", Value: "ext"}},
			bson.D{{Key: "_id", Value: "m2"}, {Key: "name", Value: "own"}},
		))

		list, err := s.List(ctx, Music)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		require.Equal(mt, oid.Hex(), list[0].ID)
		require.Equal(mt, "m2", list[1].ID)
	})

	mt.Run("list rejects unsupported _id", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contos.music", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int32(7)}, {Key: "name", Value: "odd"}},
		))

		_, err := s.List(ctx, Music)
		require.ErrorContains(mt, err, "unsupported _id type")
	})

	mt.Run("get by hex id matches string or ObjectID", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contos.music", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "name", Value: "ext"}}))

		snap, err := s.Get(ctx, Music, oid.Hex())
		require.NoError(mt, err)
		require.Equal(mt, oid.Hex(), snap.ID)

		in := mt.GetStartedEvent().Command.Lookup("filter", "_id", "$in")
		require.Equal(mt, bsontype.Array, in.Type)
		vals, err := in.Array().Values()
		require.NoError(mt, err)
		require.Len(mt, vals, 2)
		require.Equal(mt, oid.Hex(), vals[0].StringValue())
		require.Equal(mt, oid, vals[1].ObjectID())
	})

	mt.Run("plain id filter stays a string match", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contos.stories", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "s1"}}))

		_, err := s.Get(ctx, Stories, "s1")
		require.NoError(mt, err)
		id := mt.GetStartedEvent().Command.Lookup("filter", "_id")
		require.Equal(mt, bsontype.String, id.Type)
	})

	mt.Run("delete by hex id", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, s.Delete(ctx, Music, primitive.NewObjectID().Hex()))
	})
}
