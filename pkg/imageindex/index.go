package imageindex

import (
	"sort"
	"strings"
	"sync"

	"github.com/texrig/texrig/pkg/model"
)

// State is the image index's lifecycle stage:
// Empty → Ingesting → Ready → Ingesting …
type State int

const (
	StateEmpty State = iota
	StateIngesting
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateIngesting:
		return "ingesting"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Index is the mutable image-key → ImageAsset map. Mutation is additive
// during ingest; analysis consumes a snapshot and never mutates it, so no
// lock is required across that boundary in the intended single-phase
// usage — the mutex here only protects concurrent CLI/API access to the
// same in-memory index.
type Index struct {
	mu        sync.RWMutex
	state     State
	assets    map[string]*model.ImageAsset
	pageNames map[string]bool
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		state:     StateEmpty,
		assets:    make(map[string]*model.ImageAsset),
		pageNames: make(map[string]bool),
	}
}

// State returns the index's current lifecycle state.
func (idx *Index) State() State {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.state
}

// BeginIngest transitions the index to Ingesting. Safe to call repeatedly.
func (idx *Index) BeginIngest() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.state = StateIngesting
}

// EndIngest transitions the index to Ready.
func (idx *Index) EndIngest() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.state = StateReady
}

// Clear resets the index to Empty, discarding every asset and page name.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.state = StateEmpty
	idx.assets = make(map[string]*model.ImageAsset)
	idx.pageNames = make(map[string]bool)
}

// Put inserts or replaces an asset, keyed by its normalized key.
func (idx *Index) Put(asset model.ImageAsset) {
	asset.Key = model.NormalizeKey(asset.Key)
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.assets[asset.Key] = &asset
}

// SetCanonicalSize records the canonical (width, height) a skeleton
// document declared for the attachment path, keyed the same way
// Put normalizes asset keys. A call for a key with no existing asset is a
// no-op: canonical data only canonicalizes an asset that was ingested.
func (idx *Index) SetCanonicalSize(key string, width, height int) {
	key = model.NormalizeKey(key)
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if a, ok := idx.assets[key]; ok {
		a.CanonicalWidth, a.CanonicalHeight = width, height
	}
}

// AddPageName records an atlas page's filename (with and without its
// directory prefix) so implicit backing textures are never classified as
// unused even when no attachment references them directly.
func (idx *Index) AddPageName(name string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	name = model.NormalizeKey(name)
	idx.pageNames[name] = true
	if i := strings.LastIndex(name, "/"); i >= 0 {
		idx.pageNames[name[i+1:]] = true
	}
}

// Get returns the asset stored under the exact normalized key.
func (idx *Index) Get(key string) (model.ImageAsset, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	a, ok := idx.assets[model.NormalizeKey(key)]
	if !ok {
		return model.ImageAsset{}, false
	}
	return *a, true
}

// EffectiveSize implements skeleton.ImageSizer: it resolves key via
// FindImage and returns the asset's canonical-or-physical dimensions.
func (idx *Index) EffectiveSize(key string) (width, height int, ok bool) {
	a, found := idx.FindImage(key)
	if !found {
		return 0, 0, false
	}
	w, h := a.EffectiveSize()
	return w, h, true
}

// Keys returns every normalized key in the index, sorted.
func (idx *Index) Keys() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	keys := make([]string, 0, len(idx.assets))
	for k := range idx.assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of assets in the index.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.assets)
}

// UnusedAssets returns every indexed key that is neither in usedKeys nor
// classified as an atlas page backing.
func (idx *Index) UnusedAssets(usedKeys map[string]bool) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var unused []string
	for key := range idx.assets {
		if usedKeys[key] {
			continue
		}
		if idx.pageNames[key] {
			continue
		}
		unused = append(unused, key)
	}
	sort.Strings(unused)
	return unused
}
