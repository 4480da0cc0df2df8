package workspace

import (
	"context"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	doc := New()
	doc.GeneralNotes = "hello"
	doc.Overrides = []Override{{Key: "hero.png", PercentPct: 80}}

	ctx := context.Background()
	if err := store.Set(ctx, doc); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.GeneralNotes != "hello" {
		t.Fatalf("Get() = %+v", got)
	}
	if len(got.Overrides) != 1 || got.Overrides[0].Key != "hero.png" || got.Overrides[0].PercentPct != 80 {
		t.Errorf("Overrides = %+v", got.Overrides)
	}

	if err := store.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err = store.Get(ctx, doc.ID)
	if err != nil || got != nil {
		t.Errorf("Get() after Delete = %+v, %v", got, err)
	}
}

func TestFileStore_GetMissingReturnsNilNil(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(context.Background(), "nope")
	if err != nil || got != nil {
		t.Errorf("Get() = %+v, %v, want nil, nil", got, err)
	}
}

func TestExportTOML_NonEmptyWithOverrides(t *testing.T) {
	doc := New()
	doc.Overrides = []Override{{Key: "hero.png", PercentPct: 75}}
	doc.GeneralNotes = "shrink sparingly"

	data, err := ExportTOML(doc)
	if err != nil {
		t.Fatalf("ExportTOML() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty TOML output")
	}
}
