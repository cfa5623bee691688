package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoCollection = "device_state"

type mongoDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(mongoCollection)}
}

const mongoDialTimeout = 5 * time.Second

// ConnectMongoDB dials uri and returns the named database once the server
// answers a ping. The client is released again if it never does.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	dialCtx, cancel := context.WithTimeout(ctx, mongoDialTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().
		ApplyURI(uri).
		SetAppName("puredry").
		SetConnectTimeout(mongoDialTimeout).
		SetServerSelectionTimeout(mongoDialTimeout).
		SetMaxPoolSize(20))
	if err != nil {
		return nil, fmt.Errorf("connect mongo device store: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		// dialCtx may already be spent; disconnect on its own deadline.
		discCtx, discCancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer discCancel()
		return nil, errors.Join(fmt.Errorf("ping mongo device store: %w", err), client.Disconnect(discCtx))
	}

	return client.Database(database), nil
}

func (m *MongoStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc mongoDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return doc.Value, nil
}

func (m *MongoStore) Save(ctx context.Context, key string, data []byte) error {
	doc := mongoDocument{Key: key, Value: data, UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
