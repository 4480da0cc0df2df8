package imageindex

import (
	"testing"

	"github.com/texrig/texrig/pkg/model"
)

func TestFindImage_ExactMatch(t *testing.T) {
	idx := New()
	idx.Put(model.ImageAsset{Key: "weapons/sword.png", PhysicalWidth: 64, PhysicalHeight: 128})

	a, ok := idx.FindImage("weapons/sword.png")
	if !ok || a.PhysicalWidth != 64 {
		t.Fatalf("FindImage exact match failed: %+v, %v", a, ok)
	}
}

func TestFindImage_ExtensionFallback(t *testing.T) {
	idx := New()
	idx.Put(model.ImageAsset{Key: "weapons/sword.png", PhysicalWidth: 64, PhysicalHeight: 128})

	a, ok := idx.FindImage("weapons/sword")
	if !ok || a.Key != "weapons/sword.png" {
		t.Fatalf("FindImage extension fallback failed: %+v, %v", a, ok)
	}
}

func TestFindImage_SuffixMatchPrefersShortest(t *testing.T) {
	idx := New()
	idx.Put(model.ImageAsset{Key: "sub/sword.png", PhysicalWidth: 1})
	idx.Put(model.ImageAsset{Key: "deep/nested/folder/sword.png", PhysicalWidth: 2})

	a, ok := idx.FindImage("sword.png")
	if !ok {
		t.Fatal("expected suffix match")
	}
	if a.Key != "sub/sword.png" {
		t.Errorf("FindImage() = %q, want shortest match %q", a.Key, "sub/sword.png")
	}
}

func TestFindImage_NotFound(t *testing.T) {
	idx := New()
	if _, ok := idx.FindImage("nope.png"); ok {
		t.Error("expected no match")
	}
}

func TestUnusedAssets_ExcludesPageNames(t *testing.T) {
	idx := New()
	idx.Put(model.ImageAsset{Key: "hero.png"})
	idx.Put(model.ImageAsset{Key: "atlas/page1.png"})
	idx.AddPageName("atlas/page1.png")

	unused := idx.UnusedAssets(map[string]bool{})
	if len(unused) != 1 || unused[0] != "hero.png" {
		t.Errorf("UnusedAssets() = %v, want [hero.png]", unused)
	}
}

func TestClearResetsState(t *testing.T) {
	idx := New()
	idx.BeginIngest()
	idx.Put(model.ImageAsset{Key: "a.png"})
	idx.EndIngest()
	if idx.State() != StateReady {
		t.Fatalf("State() = %v, want Ready", idx.State())
	}

	idx.Clear()
	if idx.State() != StateEmpty {
		t.Errorf("State() after Clear = %v, want Empty", idx.State())
	}
	if idx.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", idx.Len())
	}
}

func TestEffectiveSize_CanonicalOverridesPhysical(t *testing.T) {
	idx := New()
	idx.Put(model.ImageAsset{Key: "hero.png", PhysicalWidth: 100, PhysicalHeight: 100})
	idx.SetCanonicalSize("hero.png", 64, 64)

	w, h, ok := idx.EffectiveSize("hero.png")
	if !ok || w != 64 || h != 64 {
		t.Errorf("EffectiveSize() = (%d,%d,%v), want (64,64,true)", w, h, ok)
	}
}
