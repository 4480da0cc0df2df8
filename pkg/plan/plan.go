package plan

import (
	"math"
	"sort"

	"github.com/texrig/texrig/pkg/model"
)

// Plan computes one OptimizationTask per stat: the buffered render
// target, clamped to the image's physical bounds, ordered resizes first
// (alphabetical, natural-numeric) and copies last. It never touches
// pixel data — only the stats' recorded dimensions.
func Plan(stats []model.GlobalAssetStat, bufferPct float64) []model.OptimizationTask {
	tasks := make([]model.OptimizationTask, 0, len(stats))
	for _, s := range stats {
		physW, physH := s.PhysicalWidth, s.PhysicalHeight
		targetW := bufferedTarget(s.MaxRenderWidth, bufferPct)
		targetH := bufferedTarget(s.MaxRenderHeight, bufferPct)

		if physW > 0 && targetW > physW {
			targetW = physW
		}
		if physH > 0 && targetH > physH {
			targetH = physH
		}
		if targetW < 1 {
			targetW = 1
		}
		if targetH < 1 {
			targetH = 1
		}

		tasks = append(tasks, model.OptimizationTask{
			ImageKey:       s.ImageKey,
			PhysicalWidth:  physW,
			PhysicalHeight: physH,
			TargetWidth:    targetW,
			TargetHeight:   targetH,
			IsResize:       targetW != physW || targetH != physH,
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.IsResize != b.IsResize {
			return a.IsResize // resizes sort before copies
		}
		return naturalLess(a.ImageKey, b.ImageKey)
	})
	return tasks
}

func bufferedTarget(maxRender int, bufferPct float64) int {
	return int(math.Ceil(float64(maxRender) * (1 + bufferPct/100)))
}
