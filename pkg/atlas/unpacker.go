package atlas

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/texrig/texrig/pkg/model"
)

// Unpack groups meta's regions by page and extracts each into a
// standalone image in logical orientation, restoring a 90° clockwise
// rotation for any region stored rotated on its page. pages maps a page
// name (as sanitized by Parse) to its decoded image.
//
// A region whose page is absent from pages is skipped, not an error: a
// missing atlas page image is a warning, and the run continues.
func Unpack(pages map[string]image.Image, meta model.AtlasMetadata) (map[string]image.Image, []string) {
	out := make(map[string]image.Image, len(meta.Regions))
	var warnings []string
	warned := make(map[string]bool)

	for _, r := range meta.Regions {
		page, ok := pages[r.PageName]
		if !ok {
			if !warned[r.PageName] {
				warnings = append(warnings, fmt.Sprintf("missing atlas page image %q", r.PageName))
				warned[r.PageName] = true
			}
			continue
		}

		storedW, storedH := r.StoredSize()
		region := imaging.Crop(page, image.Rect(r.X, r.Y, r.X+storedW, r.Y+storedH))

		var restored image.Image = region
		if r.Rotated {
			// Stored rotated 90° CCW; Rotate270 (90° CW) restores logical
			// orientation: canvas top→source left, left→bottom,
			// right→top, bottom→right.
			restored = imaging.Rotate270(region)
		}
		out[r.Name] = restored
	}
	return out, warnings
}

// OutputName appends a ".png" extension to a region name if it doesn't
// already end in a recognized image extension.
func OutputName(regionName string) string {
	lower := strings.ToLower(regionName)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return regionName
		}
	}
	return regionName + ".png"
}
