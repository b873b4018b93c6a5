package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
)

type companyDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d companyDoc) toDomain() *company.Company {
	return &company.Company{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt.UTC()}
}

type companyRepository struct {
	collection *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) company.Repository {
	return &companyRepository{collection: db.Collection(companiesCollection)}
}

func (r *companyRepository) FetchCompanyByID(ctx context.Context, id company.ID) (*company.Company, error) {
	return r.findOne(ctx, "find company by id", bson.M{"_id": id})
}

func (r *companyRepository) FetchCompanyByName(ctx context.Context, name string) (*company.Company, error) {
	return r.findOne(ctx, "find company by name", bson.M{"name": name})
}

func (r *companyRepository) FetchCompanies(ctx context.Context) (company.Companies, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Storage("find companies", err)
	}
	defer cursor.Close(ctx)

	var docs []companyDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errs.Storage("decode companies", err)
	}

	cs := make(company.Companies, len(docs))
	for i, d := range docs {
		cs[i] = d.toDomain()
	}
	return cs, nil
}

func (r *companyRepository) CreateCompany(ctx context.Context, c company.Company) (*company.Company, error) {
	doc := companyDoc{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt.UTC()}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("company %q: %w", c.Name, errs.ErrConflict)
		}
		return nil, errs.Storage("insert company", err)
	}
	return doc.toDomain(), nil
}

func (r *companyRepository) findOne(ctx context.Context, op string, filter bson.M) (*company.Company, error) {
	var doc companyDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage(op, err)
	}
	return doc.toDomain(), nil
}
