package export

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/texrig/texrig/pkg/pipeline"
)

func TestBuildZip(t *testing.T) {
	results := []pipeline.ResampleResult{
		{ImageKey: "hero/hand", Data: []byte("png-bytes-1")},
		{ImageKey: "hero/arm", Data: []byte("png-bytes-2")},
		{ImageKey: "hero/empty"}, // no data, should be skipped
	}

	data, err := BuildZip(results)
	if err != nil {
		t.Fatalf("BuildZip() error = %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	if len(r.File) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(r.File))
	}

	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	if !names["images_optimized/hero/hand.png"] || !names["images_optimized/hero/arm.png"] {
		t.Fatalf("unexpected entry names: %v", names)
	}
}

func TestBuildZip_KeyWithExplicitExtension(t *testing.T) {
	results := []pipeline.ResampleResult{
		{ImageKey: "hero.png", Data: []byte("png-bytes")},
	}

	data, err := BuildZip(results)
	if err != nil {
		t.Fatalf("BuildZip() error = %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	if len(r.File) != 1 || r.File[0].Name != "images_optimized/hero.png" {
		t.Fatalf("got entry %q, want images_optimized/hero.png (no doubled extension)", r.File[0].Name)
	}
}

func TestBuildZip_Empty(t *testing.T) {
	data, err := BuildZip(nil)
	if err != nil {
		t.Fatalf("BuildZip() error = %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	if len(r.File) != 0 {
		t.Fatalf("expected empty archive, got %d files", len(r.File))
	}
}
