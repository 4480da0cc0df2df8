package skeleton

import (
	"math"
	"sort"

	"github.com/texrig/texrig/pkg/model"
)

// sampleRate is the fixed sampling grid, in Hz.
const sampleRate = 30.0

// buildTimeGrid returns the sorted, deduplicated union of the fixed 30 Hz
// grid over [0, duration] and every exact scale-keyframe time on any bone
// in this animation, so no keyframe extremum is missed between grid
// points.
func buildTimeGrid(anim *model.Animation) []float64 {
	duration := animationDuration(anim)

	seen := make(map[float64]bool)
	var times []float64
	add := func(t float64) {
		// round to avoid float noise producing near-duplicate grid points
		t = math.Round(t*1e6) / 1e6
		if !seen[t] {
			seen[t] = true
			times = append(times, t)
		}
	}

	steps := int(math.Round(duration * sampleRate))
	for i := 0; i <= steps; i++ {
		add(float64(i) / sampleRate)
	}
	for _, bt := range anim.Bones {
		for _, k := range bt.ScaleKeys {
			add(k.Time)
		}
	}

	sort.Float64s(times)
	return times
}

// animationDuration is the latest keyframe time across every bone scale
// timeline and slot attachment timeline in the animation. An animation
// with no timelines at all has duration 0 (a single sample at t=0).
func animationDuration(anim *model.Animation) float64 {
	var d float64
	for _, bt := range anim.Bones {
		for _, k := range bt.ScaleKeys {
			if k.Time > d {
				d = k.Time
			}
		}
	}
	for _, st := range anim.Slots {
		for _, k := range st.AttachmentKeys {
			if k.Time > d {
				d = k.Time
			}
		}
	}
	return d
}

// frameIndexAt converts a sample time to the frame index recorded
// alongside a maximum: round(time × 30).
func frameIndexAt(t float64) int {
	return int(math.Round(t * sampleRate))
}

// interpolateScale evaluates a bone's animated scale at time t. Absent a
// timeline, the animated scale is (1, 1). Before the first key or after
// the last, the boundary key's value holds. Between two keys, curve
// selects linear or stepped interpolation; any curve value other than
// "stepped" is treated as linear (a documented limitation).
func interpolateScale(keys []model.ScaleKey, t float64) (x, y float64) {
	if len(keys) == 0 {
		return 1, 1
	}
	if t <= keys[0].Time {
		return keys[0].ScaleX, keys[0].ScaleY
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.ScaleX, last.ScaleY
	}
	for i := 1; i < len(keys); i++ {
		if t > keys[i].Time {
			continue
		}
		prev, next := keys[i-1], keys[i]
		if prev.Curve == model.CurveStepped {
			return prev.ScaleX, prev.ScaleY
		}
		span := next.Time - prev.Time
		if span <= 0 {
			return prev.ScaleX, prev.ScaleY
		}
		frac := (t - prev.Time) / span
		return lerp(prev.ScaleX, next.ScaleX, frac), lerp(prev.ScaleY, next.ScaleY, frac)
	}
	return last.ScaleX, last.ScaleY
}

func lerp(a, b, frac float64) float64 { return a + (b-a)*frac }

// scaleSample is one bone's resolved cumulative scale at a single sample
// time: the product of the parent chain's cumulative scale, this bone's
// setup scale, and its animated scale, plus whether any ancestor (or the
// bone itself) carries a scale timeline in the active animation.
type scaleSample struct {
	ScaleX, ScaleY float64
	Affected       bool
}

// scaleCache memoizes cumulative scale per bone for one sample time,
// computed depth-first from the forest root down and cached per bone
// index so a shared ancestor is resolved once per sample.
type scaleCache struct {
	forest *Forest
	anim   *model.Animation
	memo   []*scaleSample
}

func newScaleCache(forest *Forest, anim *model.Animation) *scaleCache {
	return &scaleCache{forest: forest, anim: anim, memo: make([]*scaleSample, forest.Len())}
}

// at returns bone i's cumulative scale at the cache's sample time,
// computing and memoizing ancestors as needed.
func (c *scaleCache) at(i int, t float64) scaleSample {
	if c.memo[i] != nil {
		return *c.memo[i]
	}

	bone := c.forest.Bone(i)
	ax, ay := 1.0, 1.0
	affectedHere := false
	if tl, ok := c.anim.Bones[bone.Name]; ok && len(tl.ScaleKeys) > 0 {
		ax, ay = interpolateScale(tl.ScaleKeys, t)
		affectedHere = true
	}

	setupX, setupY := setupScale(bone)

	parent := c.forest.Parent(i)
	var sample scaleSample
	if parent == -1 {
		sample = scaleSample{
			ScaleX:   setupX * ax,
			ScaleY:   setupY * ay,
			Affected: affectedHere,
		}
	} else {
		p := c.at(parent, t)
		sample = scaleSample{
			ScaleX:   p.ScaleX * setupX * ax,
			ScaleY:   p.ScaleY * setupY * ay,
			Affected: p.Affected || affectedHere,
		}
	}
	c.memo[i] = &sample
	return sample
}

// setupScale returns a bone's setup-pose scale, defaulting to (1, 1) when
// the source document omitted it.
func setupScale(b model.Bone) (x, y float64) {
	x, y = b.ScaleX, b.ScaleY
	if x == 0 {
		x = 1
	}
	if y == 0 {
		y = 1
	}
	return x, y
}
