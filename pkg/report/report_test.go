package report

import (
	"testing"

	"github.com/texrig/texrig/pkg/model"
)

type fakeUnused struct{ keys []string }

func (f fakeUnused) UnusedAssets(used map[string]bool) []string { return f.keys }

func TestBuild_CollectsNamesAndMissing(t *testing.T) {
	doc := &model.SkeletonDocument{
		Bones:      []model.Bone{{Name: "root"}, {Name: "ctrl_aim"}},
		Skins:      []model.Skin{{Name: model.DefaultSkinName}, {Name: "winter"}},
		EventNames: []string{"footstep"},
	}
	analyses := []SkeletonAnalysis{
		{
			Document:      doc,
			Animations:    []model.AnimationResult{{Animation: "walk", Usages: []model.FoundAssetUsage{usage("walk", "hero.png", 32, 32, "default")}}},
			MissingImages: []string{"ghost.png"},
		},
	}
	rep := Build(analyses, nil, fakeUnused{keys: []string{"unused.png"}})

	if len(rep.SkinNames) != 2 {
		t.Errorf("SkinNames = %v", rep.SkinNames)
	}
	if len(rep.ControlBoneNames) != 1 || rep.ControlBoneNames[0] != "ctrl_aim" {
		t.Errorf("ControlBoneNames = %v", rep.ControlBoneNames)
	}
	if len(rep.MissingImages) != 1 || rep.MissingImages[0] != "ghost.png" {
		t.Errorf("MissingImages = %v", rep.MissingImages)
	}
	if len(rep.UnusedAssets) != 1 || rep.UnusedAssets[0] != "unused.png" {
		t.Errorf("UnusedAssets = %v", rep.UnusedAssets)
	}
	if len(rep.GlobalStats) != 1 {
		t.Fatalf("GlobalStats = %v", rep.GlobalStats)
	}
}

func TestBuild_FlagsCanonicalDataMissing(t *testing.T) {
	doc := &model.SkeletonDocument{
		Skins: []model.Skin{{
			Name: model.DefaultSkinName,
			Slots: map[string]map[string]model.AttachmentDef{
				"hero-slot": {"hero": {Name: "hero", Kind: model.AttachmentRegion}},
			},
		}},
	}
	analyses := []SkeletonAnalysis{{Document: doc}}

	rep := Build(analyses, nil, nil)
	if !rep.IsCanonicalDataMissing {
		t.Error("expected IsCanonicalDataMissing = true when a textured attachment declares no width/height")
	}
}

func TestBuild_CanonicalDataMissing_IgnoresUsageFiltering(t *testing.T) {
	// A region attachment that lacks width/height but whose only usage is
	// locally overridden/ignored (and so never reaches a FoundAssetUsage)
	// must still flag IsCanonicalDataMissing: the condition is about the
	// skin's declared attachments, not about what survived aggregation.
	doc := &model.SkeletonDocument{
		Skins: []model.Skin{{
			Name: model.DefaultSkinName,
			Slots: map[string]map[string]model.AttachmentDef{
				"hero-slot": {"hero": {Name: "hero", Kind: model.AttachmentRegion}},
			},
		}},
	}
	analyses := []SkeletonAnalysis{
		{
			Document:   doc,
			Animations: []model.AnimationResult{{Animation: "walk", Usages: []model.FoundAssetUsage{{Animation: "walk", ImageKey: "hero", Ignored: true}}}},
		},
	}

	rep := Build(analyses, nil, nil)
	if !rep.IsCanonicalDataMissing {
		t.Error("expected IsCanonicalDataMissing = true even though the only usage was filtered out before aggregation")
	}
}

func TestBuild_CanonicalDataMissing_FalseWhenDeclared(t *testing.T) {
	doc := &model.SkeletonDocument{
		Skins: []model.Skin{{
			Name: model.DefaultSkinName,
			Slots: map[string]map[string]model.AttachmentDef{
				"hero-slot": {"hero": {Name: "hero", Kind: model.AttachmentRegion, Width: 32, Height: 32}},
			},
		}},
	}
	analyses := []SkeletonAnalysis{{
		Document:   doc,
		Animations: []model.AnimationResult{{Animation: "walk", Usages: []model.FoundAssetUsage{usage("walk", "hero", 32, 32, "default")}}},
	}}

	rep := Build(analyses, nil, nil)
	if rep.IsCanonicalDataMissing {
		t.Error("expected IsCanonicalDataMissing = false when every textured attachment declares width/height")
	}
}
