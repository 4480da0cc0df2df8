package report

import (
	"sort"

	"github.com/texrig/texrig/pkg/model"
)

// UnusedAssetsFinder resolves the unused-asset set given every key used
// across a report, the contract imageindex.Index.UnusedAssets satisfies.
type UnusedAssetsFinder interface {
	UnusedAssets(used map[string]bool) []string
}

// SkeletonAnalysis bundles one skeleton document's analyzer output —
// everything Build needs to fold it into the final AnalysisReport.
type SkeletonAnalysis struct {
	Document      *model.SkeletonDocument
	Animations    []model.AnimationResult
	MissingImages []string
}

// Build assembles the full AnalysisReport from one or more skeleton
// analyses: per-skeleton stats are aggregated independently, then merged
// across skeletons by area comparison only.
func Build(analyses []SkeletonAnalysis, assets AssetLookup, unused UnusedAssetsFinder) model.AnalysisReport {
	var report model.AnalysisReport
	var statGroups [][]model.GlobalAssetStat
	usedKeys := make(map[string]bool)
	missingSet := make(map[string]bool)
	skinSet := make(map[string]bool)
	eventSet := make(map[string]bool)
	controlSet := make(map[string]bool)

	for _, a := range analyses {
		report.Animations = append(report.Animations, a.Animations...)
		statGroups = append(statGroups, Aggregate(a.Animations, assets))

		for _, key := range a.MissingImages {
			missingSet[key] = true
		}
		for _, res := range a.Animations {
			for _, u := range res.Usages {
				if !u.Ignored {
					usedKeys[u.ImageKey] = true
				}
			}
		}
		if a.Document == nil {
			continue
		}
		for _, s := range a.Document.Skins {
			skinSet[s.Name] = true
			for _, attachments := range s.Slots {
				for _, def := range attachments {
					if def.Kind.IsTextured() && !def.HasCanonicalSize() {
						report.IsCanonicalDataMissing = true
					}
				}
			}
		}
		for _, e := range a.Document.EventNames {
			eventSet[e] = true
		}
		for _, b := range a.Document.Bones {
			if b.IsControl() {
				controlSet[b.Name] = true
			}
		}
	}

	report.GlobalStats = MergeStats(statGroups...)
	sort.Slice(report.GlobalStats, func(i, j int) bool {
		return report.GlobalStats[i].ImageKey < report.GlobalStats[j].ImageKey
	})

	report.MissingImages = sortedKeys(missingSet)
	report.SkinNames = sortedKeys(skinSet)
	report.EventNames = sortedKeys(eventSet)
	report.ControlBoneNames = sortedKeys(controlSet)

	if unused != nil {
		report.UnusedAssets = unused.UnusedAssets(usedKeys)
	}

	return report
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
