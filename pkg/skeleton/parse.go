package skeleton

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
)

// Parse decodes a textual, JSON-like skeleton document into a
// model.SkeletonDocument. id is stamped onto the document and every usage
// record the analyzer later produces from it.
//
// The wire schema follows the Spine skeleton-export format: bones/slots
// are JSON arrays, animations are a name-keyed object of slot/bone
// timelines, and skins may be encoded either as Spine 3.8's name-keyed
// object of slot maps or Spine 4.x's array of {name, attachments} objects
// — both are accepted. A document missing any of the required top-level
// keys (bones, slots, skins, animations) is rejected as malformed.
func Parse(id string, raw []byte) (*model.SkeletonDocument, error) {
	var wire struct {
		Bones      []wireBone                 `json:"bones"`
		Slots      []wireSlot                 `json:"slots"`
		Skins      json.RawMessage            `json:"skins"`
		Animations map[string]wireAnimation   `json:"animations"`
		Events     map[string]json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "skeleton %q: invalid JSON", id)
	}
	if wire.Bones == nil || wire.Slots == nil || wire.Skins == nil || wire.Animations == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "skeleton %q: missing one of the required keys bones/slots/skins/animations", id)
	}

	doc := &model.SkeletonDocument{ID: id}

	for _, b := range wire.Bones {
		doc.Bones = append(doc.Bones, model.Bone{
			Name:       b.Name,
			ParentName: b.Parent,
			ScaleX:     orOne(b.ScaleX),
			ScaleY:     orOne(b.ScaleY),
		})
	}

	for _, s := range wire.Slots {
		doc.Slots = append(doc.Slots, model.Slot{
			Name:              s.Name,
			BoneName:          s.Bone,
			DefaultAttachment: s.Attachment,
		})
	}

	skins, err := parseSkins(wire.Skins)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "skeleton %q: bad skins", id)
	}
	doc.Skins = skins

	animNames := make([]string, 0, len(wire.Animations))
	for name := range wire.Animations {
		animNames = append(animNames, name)
	}
	sort.Strings(animNames)
	for _, name := range animNames {
		doc.Animations = append(doc.Animations, wire.Animations[name].toModel(name))
	}

	for name := range wire.Events {
		doc.EventNames = append(doc.EventNames, name)
	}
	sort.Strings(doc.EventNames)

	return doc, nil
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

type wireBone struct {
	Name    string  `json:"name"`
	Parent  string  `json:"parent"`
	ScaleX  float64 `json:"scaleX"`
	ScaleY  float64 `json:"scaleY"`
}

type wireSlot struct {
	Name       string `json:"name"`
	Bone       string `json:"bone"`
	Attachment string `json:"attachment"`
}

// wireAttachment mirrors one skin attachment entry. Type defaults to
// "region" when absent, matching Spine's own convention of omitting the
// type field for the common case.
type wireAttachment struct {
	Name   string  `json:"name"`
	Path   string  `json:"path"`
	Type   string  `json:"type"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

func (a wireAttachment) toModel(mapKey string) model.AttachmentDef {
	name := a.Name
	if name == "" {
		name = mapKey
	}
	kind := model.AttachmentKind(a.Type)
	if kind == "" {
		kind = model.AttachmentRegion
	}
	return model.AttachmentDef{
		Name:   name,
		Path:   a.Path,
		Kind:   kind,
		ScaleX: orOne(a.ScaleX),
		ScaleY: orOne(a.ScaleY),
		Width:  a.Width,
		Height: a.Height,
	}
}

// parseSkins accepts either encoding of the skins section:
//   - Spine 4.x: a JSON array of {"name": ..., "attachments": {slot: {attach: {...}}}}
//   - Spine <=3.8: a JSON object {"skinName": {slot: {attach: {...}}}}
func parseSkins(raw json.RawMessage) ([]model.Skin, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var arr []struct {
			Name        string                                    `json:"name"`
			Attachments map[string]map[string]wireAttachment `json:"attachments"`
		}
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, err
		}
		skins := make([]model.Skin, 0, len(arr))
		for _, s := range arr {
			skins = append(skins, model.Skin{Name: s.Name, Slots: toSlotMap(s.Attachments)})
		}
		return skins, nil
	}

	var obj map[string]map[string]map[string]wireAttachment
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)
	// "default" sorts before other names alphabetically in most projects,
	// but pin it first regardless so downstream default-skin logic sees a
	// stable, predictable ordering.
	sort.SliceStable(names, func(i, j int) bool {
		if names[i] == model.DefaultSkinName {
			return true
		}
		if names[j] == model.DefaultSkinName {
			return false
		}
		return false
	})
	skins := make([]model.Skin, 0, len(names))
	for _, name := range names {
		skins = append(skins, model.Skin{Name: name, Slots: toSlotMap(obj[name])})
	}
	return skins, nil
}

func toSlotMap(attachments map[string]map[string]wireAttachment) map[string]map[string]model.AttachmentDef {
	if attachments == nil {
		return nil
	}
	out := make(map[string]map[string]model.AttachmentDef, len(attachments))
	for slot, byName := range attachments {
		m := make(map[string]model.AttachmentDef, len(byName))
		for attachName, wa := range byName {
			m[attachName] = wa.toModel(attachName)
		}
		out[slot] = m
	}
	return out
}

// wireScaleKey mirrors one bone scale keyframe. Curve may appear as the
// string "stepped" or as a numeric Bezier control-point array in real
// Spine documents; anything but the literal string "stepped" is treated
// as linear (a documented limitation on curve interpretation).
type wireScaleKey struct {
	Time  float64         `json:"time"`
	X     float64         `json:"x"`
	Y     float64         `json:"y"`
	Curve json.RawMessage `json:"curve"`
}

func (k wireScaleKey) toModel() model.ScaleKey {
	curve := model.CurveLinear
	var s string
	if json.Unmarshal(k.Curve, &s) == nil && s == string(model.CurveStepped) {
		curve = model.CurveStepped
	}
	return model.ScaleKey{Time: k.Time, ScaleX: orOne(k.X), ScaleY: orOne(k.Y), Curve: curve}
}

type wireAttachmentKey struct {
	Time float64 `json:"time"`
	Name *string `json:"name"`
}

func (k wireAttachmentKey) toModel() model.AttachmentKey {
	name := ""
	if k.Name != nil {
		name = *k.Name
	}
	return model.AttachmentKey{Time: k.Time, Name: name}
}

// wireBoneTimeline captures the "scale" key array plus whether any other
// timeline kind (rotate, translate, shear) is present on this bone within
// the animation, via the raw key set (the "implicitly active slot" rule
// keys off this signal).
type wireBoneTimeline map[string]json.RawMessage

func (t wireBoneTimeline) toModel() model.BoneTimeline {
	var bt model.BoneTimeline
	for kind, raw := range t {
		if kind != "scale" {
			bt.HasOther = true
			continue
		}
		var keys []wireScaleKey
		if err := json.Unmarshal(raw, &keys); err != nil {
			continue
		}
		for _, k := range keys {
			bt.ScaleKeys = append(bt.ScaleKeys, k.toModel())
		}
		sort.Slice(bt.ScaleKeys, func(i, j int) bool { return bt.ScaleKeys[i].Time < bt.ScaleKeys[j].Time })
	}
	return bt
}

// wireSlotTimeline captures the "attachment" key array plus whether any
// other timeline kind (color, deform) is present on this slot.
type wireSlotTimeline map[string]json.RawMessage

func (t wireSlotTimeline) toModel() model.SlotTimeline {
	var st model.SlotTimeline
	for kind, raw := range t {
		if kind != "attachment" {
			st.HasOther = true
			continue
		}
		var keys []wireAttachmentKey
		if err := json.Unmarshal(raw, &keys); err != nil {
			continue
		}
		for _, k := range keys {
			st.AttachmentKeys = append(st.AttachmentKeys, k.toModel())
		}
		sort.Slice(st.AttachmentKeys, func(i, j int) bool { return st.AttachmentKeys[i].Time < st.AttachmentKeys[j].Time })
	}
	return st
}

type wireAnimation struct {
	Slots map[string]wireSlotTimeline `json:"slots"`
	Bones map[string]wireBoneTimeline `json:"bones"`
}

func (a wireAnimation) toModel(name string) model.Animation {
	anim := model.Animation{Name: name}
	if len(a.Slots) > 0 {
		anim.Slots = make(map[string]model.SlotTimeline, len(a.Slots))
		for slot, tl := range a.Slots {
			anim.Slots[slot] = tl.toModel()
		}
	}
	if len(a.Bones) > 0 {
		anim.Bones = make(map[string]model.BoneTimeline, len(a.Bones))
		for bone, tl := range a.Bones {
			anim.Bones[bone] = tl.toModel()
		}
	}
	return anim
}
