package pipeline

import (
	"encoding/json"

	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
)

// Snapshot is the on-disk form of one ingested session: every image
// asset's raw bytes plus every parsed skeleton document. Unlike
// model.ImageAsset's own JSON encoding (which omits Data to keep an
// AnalysisReport light), a snapshot exists specifically to round-trip
// through the CLI's file-based command chain, letting one invocation's
// ingest feed the next invocation's analyze/plan/resample without
// holding state in memory across process boundaries.
type Snapshot struct {
	Images    []snapshotImage           `json:"images"`
	Skeletons []*model.SkeletonDocument `json:"skeletons"`
}

type snapshotImage struct {
	Key             string          `json:"key"`
	SourcePath      string          `json:"sourcePath,omitempty"`
	Kind            model.AssetKind `json:"kind"`
	Data            []byte          `json:"data"`
	PhysicalWidth   int             `json:"physicalWidth"`
	PhysicalHeight  int             `json:"physicalHeight"`
	CanonicalWidth  int             `json:"canonicalWidth,omitempty"`
	CanonicalHeight int             `json:"canonicalHeight,omitempty"`
}

// Snapshot captures the runner's current image index and skeletons as a
// serializable value.
func (r *Runner) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{Skeletons: r.skeletons}
	for _, key := range r.Index.Keys() {
		a, ok := r.Index.Get(key)
		if !ok {
			continue
		}
		snap.Images = append(snap.Images, snapshotImage{
			Key: a.Key, SourcePath: a.SourcePath, Kind: a.Kind, Data: a.Data,
			PhysicalWidth: a.PhysicalWidth, PhysicalHeight: a.PhysicalHeight,
			CanonicalWidth: a.CanonicalWidth, CanonicalHeight: a.CanonicalHeight,
		})
	}
	return snap
}

// LoadSnapshot replaces the runner's session state with snap's contents,
// as if every asset in it had just been ingested.
func (r *Runner) LoadSnapshot(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Index.Clear()
	r.Index.BeginIngest()
	for _, img := range snap.Images {
		r.Index.Put(model.ImageAsset{
			Key: img.Key, SourcePath: img.SourcePath, Kind: img.Kind, Data: img.Data,
			PhysicalWidth: img.PhysicalWidth, PhysicalHeight: img.PhysicalHeight,
			CanonicalWidth: img.CanonicalWidth, CanonicalHeight: img.CanonicalHeight,
		})
	}
	r.Index.EndIngest()
	r.skeletons = snap.Skeletons
}

// EncodeSnapshot marshals a Snapshot to JSON.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode session snapshot")
	}
	return data, nil
}

// DecodeSnapshot unmarshals a Snapshot from JSON.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode session snapshot")
	}
	return snap, nil
}
