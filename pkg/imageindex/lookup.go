package imageindex

import (
	"strings"

	"github.com/texrig/texrig/pkg/model"
)

// lookupExtensions are appended, in order, when an exact match on the
// bare requested key fails.
var lookupExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// FindImage resolves a requested key to an indexed asset following a
// strict precedence:
//  1. exact match on the normalized key;
//  2. exact match after appending each recognized extension;
//  3. suffix match against "/<requested>" (optionally extension-appended),
//     preferring the shortest matching key.
func (idx *Index) FindImage(requested string) (model.ImageAsset, bool) {
	key := model.NormalizeKey(requested)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if a, ok := idx.assets[key]; ok {
		return *a, true
	}

	for _, ext := range lookupExtensions {
		if a, ok := idx.assets[key+ext]; ok {
			return *a, true
		}
	}

	candidates := []string{key}
	for _, ext := range lookupExtensions {
		candidates = append(candidates, key+ext)
	}

	var best *model.ImageAsset
	bestLen := -1
	for indexedKey, asset := range idx.assets {
		for _, c := range candidates {
			if strings.HasSuffix(indexedKey, "/"+c) {
				if best == nil || len(indexedKey) < bestLen {
					best = asset
					bestLen = len(indexedKey)
				}
			}
		}
	}
	if best != nil {
		return *best, true
	}

	return model.ImageAsset{}, false
}
