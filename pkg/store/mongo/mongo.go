package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoArchive implements Archive backed by a MongoDB collection.
type MongoArchive struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoArchive connects to uri and returns an Archive backed by
// database.reports.
func NewMongoArchive(ctx context.Context, uri, database string) (*MongoArchive, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}
	return &MongoArchive{client: client, coll: client.Database(database).Collection("reports")}, nil
}

func (a *MongoArchive) Save(ctx context.Context, skeletonIDs []string, report model.AnalysisReport) (string, error) {
	doc := ArchivedReport{
		ID:          uuid.NewString(),
		SkeletonIDs: skeletonIDs,
		CreatedAt:   time.Now().UTC(),
		Report:      report,
	}
	if _, err := a.coll.InsertOne(ctx, doc); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "insert archived report")
	}
	return doc.ID, nil
}

func (a *MongoArchive) Get(ctx context.Context, id string) (*ArchivedReport, error) {
	var doc ArchivedReport
	err := a.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get archived report %q", id)
	}
	return &doc, nil
}

func (a *MongoArchive) List(ctx context.Context, skeletonID string, limit int) ([]ArchivedReport, error) {
	filter := bson.M{}
	if skeletonID != "" {
		filter["skeleton_ids"] = skeletonID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := a.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list archived reports")
	}
	defer cur.Close(ctx)

	var out []ArchivedReport
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode archived reports")
	}
	return out, nil
}

func (a *MongoArchive) Close() error {
	return a.client.Disconnect(context.Background())
}
