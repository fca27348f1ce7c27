// internal/app/store/blob/mongo.go
package blob

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a Store backed by a single MongoDB collection of
// {_id: key, value: string} documents.
type Mongo struct {
	c *mongo.Collection
}

// NewMongo returns a Store persisting into the "blobs" collection of db.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection("blobs")}
}

type blobDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func (s *Mongo) Get(ctx context.Context, key string) (string, bool, error) {
	var doc blobDoc
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

func (s *Mongo) Set(ctx context.Context, key, value string) error {
	_, err := s.c.ReplaceOne(ctx,
		bson.M{"_id": key},
		blobDoc{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *Mongo) Remove(ctx context.Context, key string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *Mongo) Clear(ctx context.Context) error {
	_, err := s.c.DeleteMany(ctx, bson.M{})
	return err
}
