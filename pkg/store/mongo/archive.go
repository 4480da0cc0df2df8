package mongo

import (
	"context"
	"time"

	"github.com/texrig/texrig/pkg/model"
)

// ArchivedReport is one historical analyze() run, identified by ID and
// the skeleton identifiers it covers.
type ArchivedReport struct {
	ID          string             `bson:"_id,omitempty" json:"id"`
	SkeletonIDs []string           `bson:"skeleton_ids" json:"skeletonIds"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	Report      model.AnalysisReport `bson:"report" json:"report"`
}

// Archive persists AnalysisReports for later retrieval and diffing.
type Archive interface {
	Save(ctx context.Context, skeletonIDs []string, report model.AnalysisReport) (id string, err error)
	Get(ctx context.Context, id string) (*ArchivedReport, error)
	List(ctx context.Context, skeletonID string, limit int) ([]ArchivedReport, error)
	Close() error
}

// NullArchive discards every Save and returns nothing from List/Get — the
// default when no archive backend is configured (spec SPEC_FULL §4).
type NullArchive struct{}

func (NullArchive) Save(ctx context.Context, skeletonIDs []string, report model.AnalysisReport) (string, error) {
	return "", nil
}

func (NullArchive) Get(ctx context.Context, id string) (*ArchivedReport, error) { return nil, nil }

func (NullArchive) List(ctx context.Context, skeletonID string, limit int) ([]ArchivedReport, error) {
	return nil, nil
}

func (NullArchive) Close() error { return nil }

var (
	_ Archive = NullArchive{}
	_ Archive = (*MongoArchive)(nil)
)
