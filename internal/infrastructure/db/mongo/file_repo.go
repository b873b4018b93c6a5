package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/mds"
)

type fileDoc struct {
	ID           string    `bson:"_id"`
	MdsID        string    `bson:"mdsId"`
	MdsNumber    string    `bson:"mdsNumber"`
	CompanyID    string    `bson:"companyId"`
	CompanyName  string    `bson:"companyName"`
	ManualType   string    `bson:"manualType"`
	Filename     string    `bson:"filename"`
	OriginalName string    `bson:"originalName"`
	UploadDate   time.Time `bson:"uploadDate"`
	// FileURL is denormalized for readers of the raw collection. It is always
	// written from Filename and never read back.
	FileURL string `bson:"fileUrl"`
}

func toFileDoc(f file.File) fileDoc {
	return fileDoc{
		ID:           f.ID,
		MdsID:        f.MdsID,
		MdsNumber:    f.MdsNumber,
		CompanyID:    f.CompanyID,
		CompanyName:  f.CompanyName,
		ManualType:   string(f.ManualType),
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		UploadDate:   f.UploadDate.UTC(),
		FileURL:      f.URL(),
	}
}

func (d fileDoc) toDomain() *file.File {
	return &file.File{
		ID:           d.ID,
		MdsID:        d.MdsID,
		MdsNumber:    d.MdsNumber,
		CompanyID:    d.CompanyID,
		CompanyName:  d.CompanyName,
		ManualType:   file.ManualType(d.ManualType),
		Filename:     d.Filename,
		OriginalName: d.OriginalName,
		UploadDate:   d.UploadDate.UTC(),
	}
}

type fileRepository struct {
	files     *mongo.Collection
	companies *mongo.Collection
	entries   *mongo.Collection
}

func NewFileRepository(db *mongo.Database) file.Repository {
	return &fileRepository{
		files:     db.Collection(filesCollection),
		companies: db.Collection(companiesCollection),
		entries:   db.Collection(entriesCollection),
	}
}

var newestFirst = bson.D{{Key: "uploadDate", Value: -1}, {Key: "_id", Value: -1}}

// CreateFile checks both references before inserting since the collections
// carry no foreign keys.
func (r *fileRepository) CreateFile(ctx context.Context, f file.File) (*file.File, error) {
	if err := r.mustExist(ctx, r.companies, f.CompanyID, "company"); err != nil {
		return nil, err
	}
	if err := r.mustExist(ctx, r.entries, f.MdsID, "mds entry"); err != nil {
		return nil, err
	}

	doc := toFileDoc(f)
	if _, err := r.files.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("file %q: %w", f.Filename, errs.ErrConflict)
		}
		return nil, errs.Storage("insert file", err)
	}
	return doc.toDomain(), nil
}

func (r *fileRepository) FetchFileByID(ctx context.Context, id file.ID) (*file.File, error) {
	var doc fileDoc
	if err := r.files.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage("find file by id", err)
	}
	return doc.toDomain(), nil
}

func (r *fileRepository) FetchFiles(ctx context.Context) (file.Files, error) {
	return r.find(ctx, "find files", bson.M{})
}

func (r *fileRepository) FetchFilesByMdsNumber(ctx context.Context, mdsNumber string) (file.Files, error) {
	return r.find(ctx, "find files by mds number", bson.M{"mdsNumber": mdsNumber})
}

func (r *fileRepository) FetchFilesByMdsID(ctx context.Context, mdsID mds.ID) (file.Files, error) {
	return r.find(ctx, "find files by mds id", bson.M{"mdsId": mdsID})
}

func (r *fileRepository) FetchFilesByCompanyID(ctx context.Context, companyID company.ID) (file.Files, error) {
	return r.find(ctx, "find files by company id", bson.M{"companyId": companyID})
}

func (r *fileRepository) FetchMdsNumbers(ctx context.Context) ([]string, error) {
	values, err := r.files.Distinct(ctx, "mdsNumber", bson.M{})
	if err != nil {
		return nil, errs.Storage("distinct mds numbers", err)
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)

	return out, nil
}

func (r *fileRepository) FetchGroupCounts(ctx context.Context, companyID company.ID) (file.GroupCounts, error) {
	pipeline := mongo.Pipeline{}
	if companyID != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"companyId": companyID}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "companyId", Value: "$companyId"}, {Key: "mdsId", Value: "$mdsId"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.companyId", Value: 1}, {Key: "_id.mdsId", Value: 1}}}},
	)

	var rows []struct {
		ID struct {
			CompanyID string `bson:"companyId"`
			MdsID     string `bson:"mdsId"`
		} `bson:"_id"`
		Count int `bson:"count"`
	}
	if err := r.aggregate(ctx, "aggregate group counts", pipeline, &rows); err != nil {
		return nil, err
	}

	out := make(file.GroupCounts, len(rows))
	for i, row := range rows {
		out[i] = file.GroupCount{CompanyID: row.ID.CompanyID, MdsID: row.ID.MdsID, Count: row.Count}
	}
	return out, nil
}

func (r *fileRepository) FetchCompanyStats(ctx context.Context) (file.CompanyStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$companyId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "manualTypes", Value: bson.D{{Key: "$addToSet", Value: "$manualType"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var rows []struct {
		CompanyID   string   `bson:"_id"`
		Count       int      `bson:"count"`
		ManualTypes []string `bson:"manualTypes"`
	}
	if err := r.aggregate(ctx, "aggregate company stats", pipeline, &rows); err != nil {
		return nil, err
	}

	out := make(file.CompanyStats, len(rows))
	for i, row := range rows {
		mts := make([]file.ManualType, len(row.ManualTypes))
		for j, mt := range row.ManualTypes {
			mts[j] = file.ManualType(mt)
		}
		sort.Slice(mts, func(a, b int) bool { return mts[a] < mts[b] })
		out[i] = file.CompanyStat{CompanyID: row.CompanyID, Count: row.Count, ManualTypes: mts}
	}
	return out, nil
}

func (r *fileRepository) find(ctx context.Context, op string, filter bson.M) (file.Files, error) {
	cursor, err := r.files.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, errs.Storage(op, err)
	}
	defer cursor.Close(ctx)

	var docs []fileDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errs.Storage(op, err)
	}

	fs := make(file.Files, len(docs))
	for i, d := range docs {
		fs[i] = d.toDomain()
	}
	return fs, nil
}

func (r *fileRepository) aggregate(ctx context.Context, op string, pipeline mongo.Pipeline, out any) error {
	cursor, err := r.files.Aggregate(ctx, pipeline)
	if err != nil {
		return errs.Storage(op, err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, out); err != nil {
		return errs.Storage(op, err)
	}
	return nil
}

func (r *fileRepository) mustExist(ctx context.Context, coll *mongo.Collection, id, what string) error {
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return errs.Storage("insert file", err)
	}
	if n == 0 {
		return errs.Storage("insert file", fmt.Errorf("%s %q does not exist", what, id))
	}
	return nil
}
