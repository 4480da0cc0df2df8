package workspace

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/texrig/texrig/pkg/errors"
)

// tomlDocument mirrors Document with plain fields: BurntSushi/toml does
// not consult json tags, and Document's custom Override JSON codec has no
// TOML analog, so overrides are flattened to parallel key/percent slices.
type tomlDocument struct {
	ID             string            `toml:"id"`
	Version        int               `toml:"version"`
	OverrideKeys   []string          `toml:"override_keys"`
	OverridePcts   []float64         `toml:"override_pcts"`
	LocalOverrides []string          `toml:"local_overrides"`
	Selections     []string          `toml:"selections"`
	TrackList      []string          `toml:"track_list"`
	SkinDocs       map[string]string `toml:"skin_docs"`
	EventDocs      map[string]string `toml:"event_docs"`
	BoneDocs       map[string]string `toml:"bone_docs"`
	GeneralNotes   string            `toml:"general_notes"`
	SafetyBuffer   float64           `toml:"safety_buffer"`
}

// ExportTOML renders doc as a human-editable TOML document: an optional
// export path alongside the JSON wire format.
func ExportTOML(doc *Document) ([]byte, error) {
	t := tomlDocument{
		ID: doc.ID, Version: doc.Version,
		LocalOverrides: doc.LocalOverrides, Selections: doc.Selections, TrackList: doc.TrackList,
		SkinDocs: doc.SkinDocs, EventDocs: doc.EventDocs, BoneDocs: doc.BoneDocs,
		GeneralNotes: doc.GeneralNotes, SafetyBuffer: doc.SafetyBuffer,
	}
	for _, o := range doc.Overrides {
		t.OverrideKeys = append(t.OverrideKeys, o.Key)
		t.OverridePcts = append(t.OverridePcts, o.PercentPct)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode workspace document as toml")
	}
	return buf.Bytes(), nil
}
