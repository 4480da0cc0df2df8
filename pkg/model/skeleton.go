package model

// AttachmentKind is the closed set of attachment variants a slot can bind
// to. Only Region and Mesh carry a texture; the others are structural.
type AttachmentKind string

const (
	AttachmentRegion       AttachmentKind = "region"
	AttachmentMesh         AttachmentKind = "mesh"
	AttachmentClipping     AttachmentKind = "clipping"
	AttachmentPath         AttachmentKind = "path"
	AttachmentBoundingBox  AttachmentKind = "boundingbox"
)

// IsTextured reports whether attachments of this kind participate in
// resolution analysis.
func (k AttachmentKind) IsTextured() bool {
	return k == AttachmentRegion || k == AttachmentMesh
}

// Bone is one node of the skeleton's bone forest. ParentName is empty for a
// root bone. ScaleX/ScaleY are the bone's setup-pose scale (default 1 when
// absent from the source document).
type Bone struct {
	Name       string  `json:"name" bson:"name"`
	ParentName string  `json:"parent,omitempty" bson:"parent,omitempty"`
	ScaleX     float64 `json:"scaleX" bson:"scale_x"`
	ScaleY     float64 `json:"scaleY" bson:"scale_y"`
}

// IsControl reports whether the bone is a naming-convention control bone
// (prefixed "ctrl_"), excluded from render-weight accounting but listed
// separately in AnalysisReport.
func (b Bone) IsControl() bool {
	return len(b.Name) >= 5 && b.Name[:5] == "ctrl_"
}

// Slot binds a bone to a default attachment name. DefaultAttachment is
// empty when the slot has no setup-pose attachment.
type Slot struct {
	Name              string `json:"name" bson:"name"`
	BoneName          string `json:"bone" bson:"bone"`
	DefaultAttachment string `json:"attachment,omitempty" bson:"attachment,omitempty"`
}

// AttachmentDef describes one slot→attachment binding within a skin.
// Path defaults to the attachment's own name when empty; ScaleX/ScaleY
// default to 1.
type AttachmentDef struct {
	Name    string         `json:"name" bson:"name"`
	Path    string         `json:"path,omitempty" bson:"path,omitempty"`
	Kind    AttachmentKind `json:"type" bson:"type"`
	ScaleX  float64        `json:"scaleX" bson:"scale_x"`
	ScaleY  float64        `json:"scaleY" bson:"scale_y"`
	Width   int            `json:"width,omitempty" bson:"width,omitempty"`
	Height  int            `json:"height,omitempty" bson:"height,omitempty"`
}

// HasCanonicalSize reports whether the skeleton document declared an
// intrinsic width/height for this attachment.
func (a AttachmentDef) HasCanonicalSize() bool {
	return a.Width > 0 && a.Height > 0
}

// ImageKey returns the normalized image-index lookup key for this
// attachment: its Path if set, otherwise its own Name.
func (a AttachmentDef) ImageKey() string {
	if a.Path != "" {
		return a.Path
	}
	return a.Name
}

// Skin is a named slot→(attachment name→AttachmentDef) override set.
// Name "default" is the skeleton's base skin.
type Skin struct {
	Name  string                          `json:"name" bson:"name"`
	Slots map[string]map[string]AttachmentDef `json:"slots" bson:"slots"`
}

// DefaultSkinName is the name of the skeleton's base skin.
const DefaultSkinName = "default"

// Curve selects the interpolation applied between two consecutive keys of
// a timeline. Anything other than Stepped is treated as Linear.
type Curve string

const (
	CurveLinear  Curve = "linear"
	CurveStepped Curve = "stepped"
)

// ScaleKey is one keyframe of a bone's scale timeline.
type ScaleKey struct {
	Time   float64 `json:"time" bson:"time"`
	ScaleX float64 `json:"x" bson:"x"`
	ScaleY float64 `json:"y" bson:"y"`
	Curve  Curve   `json:"curve,omitempty" bson:"curve,omitempty"`
}

// AttachmentKey is one keyframe of a slot's attachment timeline: at Time,
// the slot switches to rendering Name (empty Name means "nothing").
type AttachmentKey struct {
	Time float64 `json:"time" bson:"time"`
	Name string  `json:"name" bson:"name"`
}

// BoneTimeline holds the animated scale keys for one bone within one
// animation. Any other timeline kind (translate, rotate, shear) is parsed
// only far enough to know the bone has *some* timeline in this animation,
// per spec's "implicitly active slot" rule; texrig does not interpret them.
type BoneTimeline struct {
	ScaleKeys  []ScaleKey `json:"scale,omitempty" bson:"scale,omitempty"`
	HasOther   bool       `json:"hasOther,omitempty" bson:"has_other,omitempty"`
}

// SlotTimeline holds the attachment-switch keys for one slot within one
// animation, plus whether the slot has any other (non-attachment) timeline.
type SlotTimeline struct {
	AttachmentKeys []AttachmentKey `json:"attachment,omitempty" bson:"attachment,omitempty"`
	HasOther       bool            `json:"hasOther,omitempty" bson:"has_other,omitempty"`
}

// Animation is a named set of per-bone and per-slot timelines.
type Animation struct {
	Name  string                  `json:"name" bson:"name"`
	Bones map[string]BoneTimeline `json:"bones,omitempty" bson:"bones,omitempty"`
	Slots map[string]SlotTimeline `json:"slots,omitempty" bson:"slots,omitempty"`
}

// SkeletonDocument is one logical project: bones, slots, skins, animations,
// plus bookkeeping identifiers. The bone list must form a forest — no
// cycles — enforced by pkg/skeleton when the document is loaded.
type SkeletonDocument struct {
	ID         string      `json:"id" bson:"id"`
	Bones      []Bone      `json:"bones" bson:"bones"`
	Slots      []Slot      `json:"slots" bson:"slots"`
	Skins      []Skin      `json:"skins" bson:"skins"`
	Animations []Animation `json:"animations" bson:"animations"`
	EventNames []string    `json:"events,omitempty" bson:"events,omitempty"`
}

// SkinByName returns the named skin, or the zero Skin and false if absent.
func (d *SkeletonDocument) SkinByName(name string) (Skin, bool) {
	for _, s := range d.Skins {
		if s.Name == name {
			return s, true
		}
	}
	return Skin{}, false
}
