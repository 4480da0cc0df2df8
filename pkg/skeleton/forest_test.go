package skeleton

import (
	"testing"

	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
)

func TestNewForest(t *testing.T) {
	bones := []model.Bone{
		{Name: "root"},
		{Name: "torso", ParentName: "root"},
		{Name: "arm", ParentName: "torso"},
	}
	f, err := NewForest(bones)
	if err != nil {
		t.Fatalf("NewForest() error: %v", err)
	}
	if f.Len() != 3 {
		t.Errorf("Len() = %d, want 3", f.Len())
	}
	armIdx, ok := f.Index("arm")
	if !ok {
		t.Fatal("Index(arm) not found")
	}
	if got := f.Path(armIdx); got != "root.torso.arm" {
		t.Errorf("Path(arm) = %q, want %q", got, "root.torso.arm")
	}
}

func TestNewForestUnknownParent(t *testing.T) {
	bones := []model.Bone{{Name: "arm", ParentName: "missing"}}
	if _, err := NewForest(bones); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("expected ErrCodeInvalidGraph, got %v", err)
	}
}

func TestNewForestCycle(t *testing.T) {
	bones := []model.Bone{
		{Name: "a", ParentName: "b"},
		{Name: "b", ParentName: "c"},
		{Name: "c", ParentName: "a"},
	}
	if _, err := NewForest(bones); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("expected ErrCodeInvalidGraph for cycle, got %v", err)
	}
}

func TestNewForestDuplicateName(t *testing.T) {
	bones := []model.Bone{{Name: "root"}, {Name: "root"}}
	if _, err := NewForest(bones); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("expected ErrCodeInvalidGraph for duplicate name, got %v", err)
	}
}
