package skeleton

import (
	"math"
	"sort"

	"github.com/texrig/texrig/pkg/model"
)

// ImageSizer resolves the effective (canonical-or-physical) size of an
// image by its normalized key. The analyzer depends on this interface
// rather than pkg/imageindex directly so the two packages stay decoupled.
type ImageSizer interface {
	EffectiveSize(key string) (width, height int, ok bool)
}

// Options carries the per-session overrides that affect analysis: a
// per-image override percentage, and a set of per-animation local
// overrides that exclude that animation's usage from global maxima while
// still reporting it.
type Options struct {
	OverridePct    map[string]float64
	LocalOverrides map[string]bool // key: animationName + "|" + imageKey
}

// Analyze walks doc's bone hierarchy and animations and returns one
// AnimationResult per animation plus the synthetic "Setup Pose" pass, and
// the set of attachment paths that resolved to no image-index entry.
func Analyze(doc *model.SkeletonDocument, images ImageSizer, opts Options) ([]model.AnimationResult, []string, error) {
	forest, err := NewForest(doc.Bones)
	if err != nil {
		return nil, nil, err
	}

	skins := doc.Skins
	if len(skins) == 0 {
		skins = []model.Skin{{Name: model.DefaultSkinName}}
	}

	missing := make(map[string]bool)
	results := make([]model.AnimationResult, 0, len(doc.Animations)+1)

	for i := range doc.Animations {
		anim := &doc.Animations[i]
		results = append(results, processAnimation(forest, doc, images, opts, anim.Name, anim, skins, false, missing))
	}

	results = append(results, processAnimation(forest, doc, images, opts, model.SetupPoseAnimationName, &model.Animation{}, skins, true, missing))

	missingList := make([]string, 0, len(missing))
	for k := range missing {
		missingList = append(missingList, k)
	}
	sort.Strings(missingList)

	return results, missingList, nil
}

// usageKey identifies one (slot, image) composite usage within a single
// animation — the granularity at which the record with the largest
// max-axis magnitude is kept.
type usageKey struct {
	slot     string
	imageKey string
}

type candidate struct {
	usage     model.FoundAssetUsage
	magnitude float64
}

// tieEpsilon is the magnitude-comparison tolerance for preferring the
// default skin on a tie.
const tieEpsilon = 1e-4

// processAnimation enumerates every (slot, image) usage for one animation
// (or the setup-pose pass, when forceAllSlotsActive is set) across every
// candidate skin, keeping the tightest bound per usageKey.
func processAnimation(forest *Forest, doc *model.SkeletonDocument, images ImageSizer, opts Options, animName string, anim *model.Animation, skins []model.Skin, forceAllSlotsActive bool, missing map[string]bool) model.AnimationResult {
	grid := buildTimeGrid(anim)
	best := make(map[usageKey]candidate)
	sawDefaultSkin := make(map[usageKey]bool)

	for _, slot := range doc.Slots {
		var activeFn func(t float64) string
		if forceAllSlotsActive {
			attach := slot.DefaultAttachment
			activeFn = func(float64) string { return attach }
		} else {
			fn, ok := activeAttachmentFn(slot, anim)
			if !ok {
				continue
			}
			activeFn = fn
		}

		boneIdx, ok := forest.Index(slot.BoneName)
		if !ok {
			continue
		}

		for _, t := range grid {
			attachName := activeFn(t)
			if attachName == "" {
				continue
			}
			cache := newScaleCache(forest, anim)
			boneSample := cache.at(boneIdx, t)

			for _, sk := range skins {
				def, ok := resolveAttachment(doc, sk, slot.Name, attachName)
				if !ok || !def.Kind.IsTextured() {
					continue
				}
				imageKey := model.NormalizeKey(def.ImageKey())
				w, h, ok := images.EffectiveSize(imageKey)
				if !ok {
					missing[imageKey] = true
					continue
				}

				key := usageKey{slot.Name, imageKey}
				if sk.Name == model.DefaultSkinName {
					sawDefaultSkin[key] = true
				}

				compX := boneSample.ScaleX * def.ScaleX
				compY := boneSample.ScaleY * def.ScaleY
				magnitude := math.Max(math.Abs(compX), math.Abs(compY))

				cur, exists := best[key]
				replace := !exists
				if exists {
					if magnitude > cur.magnitude+tieEpsilon {
						replace = true
					} else if math.Abs(magnitude-cur.magnitude) <= tieEpsilon &&
						sk.Name == model.DefaultSkinName && cur.usage.Skin != model.DefaultSkinName {
						replace = true
					}
				}
				if !replace {
					continue
				}

				rawW := int(math.Ceil(float64(w) * math.Abs(compX)))
				rawH := int(math.Ceil(float64(h) * math.Abs(compY)))
				finalW, finalH := rawW, rawH
				if pct, ok := opts.OverridePct[imageKey]; ok {
					finalW = int(math.Ceil(float64(rawW) * pct / 100))
					finalH = int(math.Ceil(float64(rawH) * pct / 100))
				}
				ignored := opts.LocalOverrides[animName+"|"+imageKey]

				best[key] = candidate{
					magnitude: magnitude,
					usage: model.FoundAssetUsage{
						Animation:     animName,
						Skeleton:      doc.ID,
						BonePath:      forest.Path(boneIdx),
						SlotName:      slot.Name,
						ImageKey:      imageKey,
						MaxScaleX:     math.Abs(compX),
						MaxScaleY:     math.Abs(compY),
						FrameIndex:    frameIndexAt(t),
						Skin:          sk.Name,
						ScaleAffected: boneSample.Affected,
						LocalOverride: ignored,
						Ignored:       ignored,
						RenderWidth:   finalW,
						RenderHeight:  finalH,
					},
				}
			}
		}
	}

	usages := make([]model.FoundAssetUsage, 0, len(best))
	for key, cand := range best {
		if cand.usage.Skin != model.DefaultSkinName && sawDefaultSkin[key] {
			cand.usage.ShowSkinLabel = true
		}
		usages = append(usages, cand.usage)
	}
	sort.Slice(usages, func(i, j int) bool {
		if usages[i].SlotName != usages[j].SlotName {
			return usages[i].SlotName < usages[j].SlotName
		}
		return usages[i].ImageKey < usages[j].ImageKey
	})

	return model.AnimationResult{Skeleton: doc.ID, Animation: animName, Usages: usages}
}

// activeAttachmentFn returns a function mapping sample time to the active
// attachment name for slot within anim, and whether the slot participates
// in this animation at all. A slot participates if it has its own
// attachment timeline (source 1) or if its bone or the slot itself
// carries any other timeline in this animation (source 2, the
// "implicitly active slot" rule).
func activeAttachmentFn(slot model.Slot, anim *model.Animation) (func(t float64) string, bool) {
	if st, ok := anim.Slots[slot.Name]; ok && len(st.AttachmentKeys) > 0 {
		keys := append([]model.AttachmentKey(nil), st.AttachmentKeys...)
		sort.Slice(keys, func(i, j int) bool { return keys[i].Time < keys[j].Time })
		return func(t float64) string {
			active := ""
			for _, k := range keys {
				if k.Time > t {
					break
				}
				active = k.Name
			}
			return active
		}, true
	}

	boneHasTimeline := false
	if bt, ok := anim.Bones[slot.BoneName]; ok {
		boneHasTimeline = len(bt.ScaleKeys) > 0 || bt.HasOther
	}
	slotHasOtherTimeline := false
	if st, ok := anim.Slots[slot.Name]; ok {
		slotHasOtherTimeline = st.HasOther
	}
	if boneHasTimeline || slotHasOtherTimeline {
		attach := slot.DefaultAttachment
		return func(float64) string { return attach }, true
	}

	return nil, false
}

// resolveAttachment looks up an attachment definition by name within a
// skin, falling back to the default skin when the requested skin does
// not itself override that slot/attachment pairing (matching Spine's
// skin-inheritance convention).
func resolveAttachment(doc *model.SkeletonDocument, sk model.Skin, slotName, attachName string) (model.AttachmentDef, bool) {
	if m, ok := sk.Slots[slotName]; ok {
		if def, ok := m[attachName]; ok {
			return def, true
		}
	}
	if sk.Name == model.DefaultSkinName {
		return model.AttachmentDef{}, false
	}
	if def, ok := doc.SkinByName(model.DefaultSkinName); ok {
		if m, ok := def.Slots[slotName]; ok {
			if d, ok := m[attachName]; ok {
				return d, true
			}
		}
	}
	return model.AttachmentDef{}, false
}
