package model

// FoundAssetUsage is one (animation, slot, image) usage record produced by
// the skeleton analyzer: the tightest resolution bound that animation ever
// demands of that image through that slot.
type FoundAssetUsage struct {
	Animation       string  `json:"animation" bson:"animation"`
	Skeleton        string  `json:"skeleton" bson:"skeleton"`
	BonePath        string  `json:"bonePath" bson:"bone_path"`
	SlotName        string  `json:"slotName" bson:"slot_name"`
	ImageKey        string  `json:"imageKey" bson:"image_key"`
	MaxScaleX       float64 `json:"maxScaleX" bson:"max_scale_x"`
	MaxScaleY       float64 `json:"maxScaleY" bson:"max_scale_y"`
	FrameIndex      int     `json:"frameIndex" bson:"frame_index"`
	Skin            string  `json:"skin" bson:"skin"`
	ShowSkinLabel   bool    `json:"showSkinLabel,omitempty" bson:"show_skin_label,omitempty"`
	ScaleAffected   bool    `json:"scaleAffected" bson:"scale_affected"`
	LocalOverride   bool    `json:"localOverride,omitempty" bson:"local_override,omitempty"`
	Ignored         bool    `json:"ignored,omitempty" bson:"ignored,omitempty"`
	RenderWidth     int     `json:"renderWidth" bson:"render_width"`
	RenderHeight    int     `json:"renderHeight" bson:"render_height"`
}

// Area returns RenderWidth × RenderHeight.
func (u FoundAssetUsage) Area() int { return u.RenderWidth * u.RenderHeight }

// AnimationResult groups every FoundAssetUsage produced for one animation
// (or the synthetic "Setup Pose") of one skeleton.
type AnimationResult struct {
	Skeleton  string            `json:"skeleton" bson:"skeleton"`
	Animation string            `json:"animation" bson:"animation"`
	Usages    []FoundAssetUsage `json:"usages" bson:"usages"`
}

// SetupPoseAnimationName is the synthetic animation name used for the
// setup-pose pseudo-animation pass.
const SetupPoseAnimationName = "Setup Pose"

// GlobalAssetStat is the merged, per-image maximum-resolution record that
// survives report aggregation.
type GlobalAssetStat struct {
	ImageKey         string  `json:"imageKey" bson:"image_key"`
	CanonicalWidth   int     `json:"canonicalWidth,omitempty" bson:"canonical_width,omitempty"`
	CanonicalHeight  int     `json:"canonicalHeight,omitempty" bson:"canonical_height,omitempty"`
	PhysicalWidth    int     `json:"physicalWidth" bson:"physical_width"`
	PhysicalHeight   int     `json:"physicalHeight" bson:"physical_height"`
	MaxRenderWidth   int     `json:"maxRenderWidth" bson:"max_render_width"`
	MaxRenderHeight  int     `json:"maxRenderHeight" bson:"max_render_height"`
	MaxScaleX        float64 `json:"maxScaleX" bson:"max_scale_x"`
	MaxScaleY        float64 `json:"maxScaleY" bson:"max_scale_y"`
	SourceAnimation  string  `json:"sourceAnimation" bson:"source_animation"`
	SourceSkeleton   string  `json:"sourceSkeleton" bson:"source_skeleton"`
	FrameIndex       int     `json:"frameIndex" bson:"frame_index"`
	Skin             string  `json:"skin" bson:"skin"`
	OverridePct      float64 `json:"overridePct,omitempty" bson:"override_pct,omitempty"`
	DimensionMismatch bool   `json:"dimensionMismatch,omitempty" bson:"dimension_mismatch,omitempty"`
}

// Area returns MaxRenderWidth × MaxRenderHeight.
func (s GlobalAssetStat) Area() int { return s.MaxRenderWidth * s.MaxRenderHeight }

// EffectiveSize returns the canonical size when declared,
// falling back to physical — mirroring ImageAsset.EffectiveSize.
func (s GlobalAssetStat) EffectiveSize() (width, height int) {
	if s.CanonicalWidth > 0 && s.CanonicalHeight > 0 {
		return s.CanonicalWidth, s.CanonicalHeight
	}
	return s.PhysicalWidth, s.PhysicalHeight
}

// AnalysisReport is the full output of analyze(): per-animation results,
// merged global stats, unused assets, and the derived name lists.
type AnalysisReport struct {
	Animations             []AnimationResult  `json:"animations" bson:"animations"`
	GlobalStats            []GlobalAssetStat  `json:"globalStats" bson:"global_stats"`
	UnusedAssets           []string           `json:"unusedAssets" bson:"unused_assets"`
	MissingImages          []string           `json:"missingImages" bson:"missing_images"`
	SkinNames              []string           `json:"skinNames" bson:"skin_names"`
	EventNames             []string           `json:"eventNames" bson:"event_names"`
	ControlBoneNames       []string           `json:"controlBoneNames" bson:"control_bone_names"`
	IsCanonicalDataMissing bool               `json:"isCanonicalDataMissing" bson:"is_canonical_data_missing"`
}
