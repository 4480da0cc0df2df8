package atlas

import (
	"sort"

	"github.com/texrig/texrig/pkg/model"
)

// rect is an axis-aligned free or placed rectangle used internally by the
// packer; model.PackedRect is the exported, task-tagged counterpart.
type rect struct {
	X, Y, W, H int
}

func (r rect) right() int  { return r.X + r.W }
func (r rect) bottom() int { return r.Y + r.H }

func intersects(a, b rect) bool {
	return a.X < b.right() && a.right() > b.X && a.Y < b.bottom() && a.bottom() > b.Y
}

func containsRect(outer, inner rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.right() <= outer.right() && inner.bottom() <= outer.bottom()
}

// Pack places tasks onto one or more square pageSize×pageSize pages using
// a MaxRects Best-Short-Side-Fit strategy. Placement prefers a free
// rectangle with room for a padding margin on the task's right and
// bottom edges, so neighboring rects keep a guaranteed gap; when the
// remaining space is too tight for that margin, placement falls back to
// the task's true, unpadded footprint rather than forcing a new page.
// The emitted PackedRect always carries the task's true dimensions.
func Pack(tasks []model.OptimizationTask, pageSize, padding int) model.PackResult {
	sorted := make([]model.OptimizationTask, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TargetHeight > sorted[j].TargetHeight
	})

	var result model.PackResult
	var pending []model.OptimizationTask
	for _, t := range sorted {
		if t.TargetWidth > pageSize || t.TargetHeight > pageSize {
			result.Oversize = append(result.Oversize, model.OversizeTask{
				ImageKey: t.ImageKey, Width: t.TargetWidth, Height: t.TargetHeight,
			})
			continue
		}
		pending = append(pending, t)
	}

	pageIndex := 0
	free := []rect{{X: 0, Y: 0, W: pageSize, H: pageSize}}
	tightFree := []rect{{X: 0, Y: 0, W: pageSize, H: pageSize}}
	var placed []model.PackedRect
	usedArea := 0

	flush := func() {
		if len(placed) == 0 {
			return
		}
		result.Pages = append(result.Pages, model.AtlasPage{
			Index:      pageIndex,
			Width:      pageSize,
			Height:     pageSize,
			Rects:      placed,
			Efficiency: float64(usedArea) / float64(pageSize*pageSize),
		})
		pageIndex++
		placed = nil
		usedArea = 0
		free = []rect{{X: 0, Y: 0, W: pageSize, H: pageSize}}
		tightFree = []rect{{X: 0, Y: 0, W: pageSize, H: pageSize}}
	}

	for _, t := range pending {
		w, h := t.TargetWidth, t.TargetHeight
		for {
			pos, ok := findSpot(free, tightFree, w, h, padding)
			if !ok {
				if len(placed) == 0 {
					result.Oversize = append(result.Oversize, model.OversizeTask{
						ImageKey: t.ImageKey, Width: w, Height: h,
					})
					break
				}
				flush()
				continue
			}
			placed = append(placed, model.PackedRect{
				ImageKey: t.ImageKey, Page: pageIndex,
				X: pos.X, Y: pos.Y, Width: w, Height: h,
			})
			usedArea += w * h
			free = splitAndPrune(free, rect{X: pos.X, Y: pos.Y, W: w + padding, H: h + padding})
			tightFree = splitAndPrune(tightFree, rect{X: pos.X, Y: pos.Y, W: w, H: h})
			break
		}
	}
	flush()

	return result
}

// findSpot locates a position for a w×h request. It prefers a free
// rectangle in free with room for the padding margin, so later items
// keep their guaranteed gap from this one; when no such rectangle
// remains it falls back to tightFree, the unpadded free space left by
// every placed rect's true footprint. The fallback is what lets two
// items exactly fill a page with no room left over for any margin at
// all — the padded search alone would reject that placement even
// though the items themselves don't overlap.
func findSpot(free, tightFree []rect, w, h, padding int) (rect, bool) {
	if fr, ok := bestShortSideFit(free, w+padding, h+padding); ok {
		return fr, true
	}
	return bestShortSideFit(tightFree, w, h)
}

// bestShortSideFit returns the free rectangle minimizing
// min(|freeW-w|, |freeH-h|) among those that contain a w×h request.
func bestShortSideFit(free []rect, w, h int) (rect, bool) {
	bestIdx := -1
	bestScore := -1
	for i, fr := range free {
		if fr.W < w || fr.H < h {
			continue
		}
		dw, dh := fr.W-w, fr.H-h
		score := dw
		if dh < score {
			score = dh
		}
		if bestIdx == -1 || score < bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx == -1 {
		return rect{}, false
	}
	return free[bestIdx], true
}

// splitAndPrune splits every free rectangle intersecting placed into up
// to four residual strips, then removes any rectangle now fully
// contained in another.
func splitAndPrune(free []rect, placed rect) []rect {
	var next []rect
	for _, fr := range free {
		if !intersects(fr, placed) {
			next = append(next, fr)
			continue
		}
		next = append(next, splitFreeRect(fr, placed)...)
	}
	return pruneContained(next)
}

func splitFreeRect(free, placed rect) []rect {
	var out []rect
	if placed.X > free.X {
		out = append(out, rect{X: free.X, Y: free.Y, W: placed.X - free.X, H: free.H})
	}
	if placed.right() < free.right() {
		out = append(out, rect{X: placed.right(), Y: free.Y, W: free.right() - placed.right(), H: free.H})
	}
	if placed.Y > free.Y {
		out = append(out, rect{X: free.X, Y: free.Y, W: free.W, H: placed.Y - free.Y})
	}
	if placed.bottom() < free.bottom() {
		out = append(out, rect{X: free.X, Y: placed.bottom(), W: free.W, H: free.bottom() - placed.bottom()})
	}
	return out
}

func pruneContained(rects []rect) []rect {
	var out []rect
	for i, a := range rects {
		if a.W <= 0 || a.H <= 0 {
			continue
		}
		dominated := false
		for j, b := range rects {
			if i == j || b.W <= 0 || b.H <= 0 {
				continue
			}
			if containsRect(b, a) && !(containsRect(a, b) && i < j) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, a)
		}
	}
	return out
}
