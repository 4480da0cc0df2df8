//go:build integration

package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/texrig/texrig/pkg/model"
)

func TestMongoArchive_SaveAndGet(t *testing.T) {
	uri := os.Getenv("TEXRIG_MONGO_URI")
	if uri == "" {
		t.Skip("TEXRIG_MONGO_URI not set")
	}

	ctx := context.Background()
	archive, err := NewMongoArchive(ctx, uri, "texrig_test")
	if err != nil {
		t.Fatalf("NewMongoArchive() error = %v", err)
	}
	defer archive.Close()

	id, err := archive.Save(ctx, []string{"hero"}, model.AnalysisReport{SkinNames: []string{"default"}})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := archive.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || len(got.Report.SkinNames) != 1 {
		t.Fatalf("Get() = %+v", got)
	}
}
