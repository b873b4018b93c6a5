package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/domain/mds"
)

type entryDoc struct {
	ID        string    `bson:"_id"`
	MdsNumber string    `bson:"mdsNumber"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d entryDoc) toDomain() *mds.Entry {
	return &mds.Entry{ID: d.ID, MdsNumber: d.MdsNumber, CreatedAt: d.CreatedAt.UTC()}
}

type mdsRepository struct {
	collection *mongo.Collection
}

func NewMdsRepository(db *mongo.Database) mds.Repository {
	return &mdsRepository{collection: db.Collection(entriesCollection)}
}

func (r *mdsRepository) FetchEntryByID(ctx context.Context, id mds.ID) (*mds.Entry, error) {
	return r.findOne(ctx, "find mds entry by id", bson.M{"_id": id})
}

func (r *mdsRepository) FetchEntryByNumber(ctx context.Context, mdsNumber string) (*mds.Entry, error) {
	return r.findOne(ctx, "find mds entry by number", bson.M{"mdsNumber": mdsNumber})
}

func (r *mdsRepository) FetchEntriesByIDs(ctx context.Context, ids []mds.ID) (mds.Entries, error) {
	if len(ids) == 0 {
		return mds.Entries{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "mdsNumber", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, errs.Storage("find mds entries", err)
	}
	defer cursor.Close(ctx)

	var docs []entryDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errs.Storage("decode mds entries", err)
	}

	es := make(mds.Entries, len(docs))
	for i, d := range docs {
		es[i] = d.toDomain()
	}
	return es, nil
}

func (r *mdsRepository) CreateEntry(ctx context.Context, e mds.Entry) (*mds.Entry, error) {
	doc := entryDoc{ID: e.ID, MdsNumber: e.MdsNumber, CreatedAt: e.CreatedAt.UTC()}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("mds number %q: %w", e.MdsNumber, errs.ErrConflict)
		}
		return nil, errs.Storage("insert mds entry", err)
	}
	return doc.toDomain(), nil
}

func (r *mdsRepository) findOne(ctx context.Context, op string, filter bson.M) (*mds.Entry, error) {
	var doc entryDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage(op, err)
	}
	return doc.toDomain(), nil
}
