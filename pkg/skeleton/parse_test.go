package skeleton

import (
	"testing"

	"github.com/texrig/texrig/pkg/model"
)

const sampleDoc = `{
	"bones": [
		{"name": "root"},
		{"name": "arm", "parent": "root"}
	],
	"slots": [
		{"name": "hand-slot", "bone": "arm", "attachment": "hand"}
	],
	"skins": {
		"default": {
			"hand-slot": {
				"hand": {"type": "region", "width": 100, "height": 100}
			}
		}
	},
	"animations": {
		"grow": {
			"bones": {
				"root": {
					"scale": [
						{"time": 0, "x": 1, "y": 1},
						{"time": 1, "x": 2, "y": 2}
					]
				}
			}
		}
	},
	"events": {"footstep": {}}
}`

func TestParse_DecodesFullDocument(t *testing.T) {
	doc, err := Parse("hero", []byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.ID != "hero" {
		t.Errorf("ID = %q, want hero", doc.ID)
	}
	if len(doc.Bones) != 2 || doc.Bones[1].ParentName != "root" {
		t.Fatalf("bones = %+v", doc.Bones)
	}
	if len(doc.Slots) != 1 || doc.Slots[0].BoneName != "arm" {
		t.Fatalf("slots = %+v", doc.Slots)
	}
	skin, ok := doc.SkinByName("default")
	if !ok {
		t.Fatal("expected default skin")
	}
	def := skin.Slots["hand-slot"]["hand"]
	if def.Width != 100 || def.Height != 100 || def.Kind != model.AttachmentRegion {
		t.Errorf("attachment def = %+v", def)
	}
	if len(doc.Animations) != 1 || doc.Animations[0].Name != "grow" {
		t.Fatalf("animations = %+v", doc.Animations)
	}
	keys := doc.Animations[0].Bones["root"].ScaleKeys
	if len(keys) != 2 || keys[1].ScaleX != 2 {
		t.Fatalf("scale keys = %+v", keys)
	}
	if len(doc.EventNames) != 1 || doc.EventNames[0] != "footstep" {
		t.Errorf("events = %v", doc.EventNames)
	}
}

func TestParse_RejectsMissingRequiredKeys(t *testing.T) {
	_, err := Parse("bad", []byte(`{"bones": [], "slots": []}`))
	if err == nil {
		t.Fatal("expected error for missing skins/animations")
	}
}

func TestParse_RejectsInvalidJSON(t *testing.T) {
	_, err := Parse("bad", []byte(`{not json`))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParse_SkinsArrayForm(t *testing.T) {
	doc, err := Parse("hero", []byte(`{
		"bones": [{"name": "root"}],
		"slots": [{"name": "s", "bone": "root"}],
		"skins": [{"name": "default", "attachments": {"s": {"a": {"width": 10, "height": 10}}}}],
		"animations": {}
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	skin, ok := doc.SkinByName("default")
	if !ok || skin.Slots["s"]["a"].Width != 10 {
		t.Fatalf("skin = %+v", skin)
	}
}

func TestParse_SteppedCurveMarker(t *testing.T) {
	doc, err := Parse("hero", []byte(`{
		"bones": [{"name": "root"}],
		"slots": [],
		"skins": {},
		"animations": {
			"a": {"bones": {"root": {"scale": [
				{"time": 0, "x": 1, "y": 1, "curve": "stepped"},
				{"time": 1, "x": 4, "y": 4}
			]}}}
		}
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	keys := doc.Animations[0].Bones["root"].ScaleKeys
	if keys[0].Curve != model.CurveStepped {
		t.Errorf("curve = %v, want stepped", keys[0].Curve)
	}
}
