package workspace

import (
	"encoding/json"
	"time"

	"github.com/texrig/texrig/pkg/errors"
)

// Override is one per-image resolution override: Key is an image lookup
// key, PercentPct the user-chosen percentage of the computed maximum. It
// marshals to a [key, percentage] pair on the wire rather than an object.
type Override struct {
	Key        string
	PercentPct float64
}

func (o Override) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{o.Key, o.PercentPct})
}

func (o *Override) UnmarshalJSON(data []byte) error {
	var pair [2]any
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedInput, err, "override entry")
	}
	key, _ := pair[0].(string)
	pct, _ := pair[1].(float64)
	o.Key, o.PercentPct = key, pct
	return nil
}

// Document is the configuration persistence contract: every field but
// Version is optional and defaults to its zero value on decode.
type Document struct {
	ID             string            `json:"id,omitempty"`
	Version        int               `json:"version"`
	Timestamp      time.Time         `json:"timestamp,omitzero"`
	Overrides      []Override        `json:"overrides,omitempty"`
	LocalOverrides []string          `json:"localOverrides,omitempty"`
	Selections     []string          `json:"selections,omitempty"`
	TrackList      []string          `json:"trackList,omitempty"`
	SkinDocs       map[string]string `json:"skinDocs,omitempty"`
	EventDocs      map[string]string `json:"eventDocs,omitempty"`
	BoneDocs       map[string]string `json:"boneDocs,omitempty"`
	GeneralNotes   string            `json:"generalNotes,omitempty"`
	SafetyBuffer   float64           `json:"safetyBuffer,omitempty"`
}

// CurrentVersion is stamped onto a Document created via New.
const CurrentVersion = 1
