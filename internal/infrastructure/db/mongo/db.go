package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second

	companiesCollection = "companies"
	entriesCollection   = "mds_entries"
	filesCollection     = "files"
)

// ConnectDB connects and pings the primary. The client is disconnected again
// when the ping fails.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the unique natural-key indexes and the lookup indexes
// used by the file listings. It is idempotent.
func EnsureIndexes(ctx context.Context, logger *zap.Logger, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		companiesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		entriesCollection: {
			{Keys: bson.D{{Key: "mdsNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		filesCollection: {
			{Keys: bson.D{{Key: "filename", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "mdsNumber", Value: 1}}},
			{Keys: bson.D{{Key: "mdsId", Value: 1}}},
			{Keys: bson.D{{Key: "companyId", Value: 1}}},
			{Keys: bson.D{{Key: "uploadDate", Value: -1}, {Key: "_id", Value: -1}}},
		},
	}

	for coll, models := range specs {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		logger.Debug("mongo indexes ensured", zap.String("collection", coll), zap.Strings("indexes", names))
	}

	return nil
}
