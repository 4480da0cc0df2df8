package report

import (
	"github.com/texrig/texrig/pkg/model"
)

// AssetLookup resolves an image key to its indexed asset, the same
// contract imageindex.Index.FindImage satisfies.
type AssetLookup interface {
	FindImage(key string) (model.ImageAsset, bool)
}

// Aggregate folds every non-ignored usage across results into one
// GlobalAssetStat per image key, applying a strict priority ordering:
// first observation wins; a setup-pose observation never replaces one
// from a real animation and only fills gaps no animation touched; larger
// area replaces smaller; equal-area ties prefer a non-default skin.
func Aggregate(results []model.AnimationResult, assets AssetLookup) []model.GlobalAssetStat {
	touchedByAnimation := make(map[string]bool)
	for _, res := range results {
		if res.Animation == model.SetupPoseAnimationName {
			continue
		}
		for _, u := range res.Usages {
			if u.Ignored {
				continue
			}
			touchedByAnimation[u.ImageKey] = true
		}
	}

	stats := make(map[string]*model.GlobalAssetStat)
	apply := func(u model.FoundAssetUsage) {
		if u.Ignored {
			return
		}
		if res := stats[u.ImageKey]; res == nil {
			stats[u.ImageKey] = newStat(u, assets)
			return
		}
		replaceIfBetter(stats[u.ImageKey], u)
	}

	for _, res := range results {
		if res.Animation == model.SetupPoseAnimationName {
			continue
		}
		for _, u := range res.Usages {
			apply(u)
		}
	}
	for _, res := range results {
		if res.Animation != model.SetupPoseAnimationName {
			continue
		}
		for _, u := range res.Usages {
			if touchedByAnimation[u.ImageKey] {
				continue
			}
			apply(u)
		}
	}

	out := make([]model.GlobalAssetStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	return out
}

func newStat(u model.FoundAssetUsage, assets AssetLookup) *model.GlobalAssetStat {
	stat := &model.GlobalAssetStat{
		ImageKey:        u.ImageKey,
		MaxRenderWidth:  u.RenderWidth,
		MaxRenderHeight: u.RenderHeight,
		MaxScaleX:       u.MaxScaleX,
		MaxScaleY:       u.MaxScaleY,
		SourceAnimation: u.Animation,
		SourceSkeleton:  u.Skeleton,
		FrameIndex:      u.FrameIndex,
		Skin:            u.Skin,
	}
	if assets != nil {
		if a, ok := assets.FindImage(u.ImageKey); ok {
			stat.PhysicalWidth, stat.PhysicalHeight = a.PhysicalWidth, a.PhysicalHeight
			stat.CanonicalWidth, stat.CanonicalHeight = a.CanonicalWidth, a.CanonicalHeight
			stat.DimensionMismatch = a.DimensionMismatch()
		}
	}
	return stat
}

// replaceIfBetter applies the area-comparison and skin tie-break rule,
// mutating cur in place when u should win.
func replaceIfBetter(cur *model.GlobalAssetStat, u model.FoundAssetUsage) {
	curArea := cur.MaxRenderWidth * cur.MaxRenderHeight
	uArea := u.RenderWidth * u.RenderHeight

	switch {
	case uArea > curArea:
		// wins outright
	case uArea == curArea:
		if !(u.Skin != model.DefaultSkinName && cur.Skin == model.DefaultSkinName) {
			return // tie, earlier record wins unless u brings a non-default skin
		}
	default:
		return
	}

	cur.MaxRenderWidth, cur.MaxRenderHeight = u.RenderWidth, u.RenderHeight
	cur.MaxScaleX, cur.MaxScaleY = u.MaxScaleX, u.MaxScaleY
	cur.SourceAnimation, cur.SourceSkeleton = u.Animation, u.Skeleton
	cur.FrameIndex = u.FrameIndex
	cur.Skin = u.Skin
}

// MergeStats folds GlobalAssetStats from multiple skeletons (or multiple
// Aggregate calls) into one list, one entry per image key, using area
// comparison only — ties keep the earlier record.
func MergeStats(groups ...[]model.GlobalAssetStat) []model.GlobalAssetStat {
	merged := make(map[string]model.GlobalAssetStat)
	var order []string
	for _, group := range groups {
		for _, s := range group {
			existing, ok := merged[s.ImageKey]
			if !ok {
				merged[s.ImageKey] = s
				order = append(order, s.ImageKey)
				continue
			}
			if s.Area() > existing.Area() {
				merged[s.ImageKey] = s
			}
		}
	}
	out := make([]model.GlobalAssetStat, 0, len(order))
	for _, key := range order {
		out = append(out, merged[key])
	}
	return out
}
