package atlas

import (
	"strconv"
	"strings"

	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
)

// imageExtensions are recognized trailing extensions healed from page
// filenames.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// Parse reads a textual atlas manifest and returns its parsed metadata.
// Malformed input never aborts the caller: a malformed manifest should be
// rejected at the ingest boundary, so Parse returns a coded
// ErrCodeMalformedInput error for the caller to attach to a
// skipped-source warning rather than propagating a bare parse error.
func Parse(text string) (model.AtlasMetadata, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var meta model.AtlasMetadata
	var block []string
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		regions, err := parsePageBlock(block)
		if err != nil {
			return err
		}
		meta.Regions = append(meta.Regions, regions...)
		block = nil
		return nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if err := flush(); err != nil {
				return model.AtlasMetadata{}, err
			}
			continue
		}
		block = append(block, line)
	}
	if err := flush(); err != nil {
		return model.AtlasMetadata{}, err
	}
	return meta, nil
}

// parsePageBlock parses one page's worth of non-blank lines: the first
// line is the page filename, the rest alternate region-name lines with
// "key: value" property lines belonging to the preceding region (or, if no
// region has been opened yet, page-level properties that are ignored).
func parsePageBlock(lines []string) ([]model.AtlasRegion, error) {
	pageName := sanitizePageName(lines[0])

	var regions []model.AtlasRegion
	var cur *model.AtlasRegion
	nextIndex := 0

	commit := func() {
		if cur != nil {
			regions = append(regions, *cur)
			cur = nil
		}
	}

	for _, line := range lines[1:] {
		key, value, isProp := splitProperty(line)
		if !isProp {
			commit()
			cur = &model.AtlasRegion{PageName: pageName, Name: line, Index: -1}
			continue
		}
		if cur == nil {
			continue // page-level property (size, format, filter, repeat): ignored
		}
		if err := applyRegionProperty(cur, key, value); err != nil {
			return nil, err
		}
	}
	commit()

	for i := range regions {
		if regions[i].Index == -1 {
			regions[i].Index = nextIndex
		}
		nextIndex++
	}
	return regions, nil
}

// splitProperty splits a "key: value" line. Lines without a colon are
// region-name lines, not properties.
func splitProperty(line string) (key, value string, ok bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

func applyRegionProperty(r *model.AtlasRegion, key, value string) error {
	switch strings.ToLower(key) {
	case "rotate":
		r.Rotated = strings.EqualFold(strings.TrimSpace(value), "true")
	case "xy":
		x, y, err := parseIntPair(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMalformedInput, err, "region %q: bad xy %q", r.Name, value)
		}
		r.X, r.Y = x, y
	case "size":
		w, h, err := parseIntPair(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMalformedInput, err, "region %q: bad size %q", r.Name, value)
		}
		// size is the stored (page) rectangle; swap back to logical
		// orientation when rotated.
		if r.Rotated {
			r.Width, r.Height = h, w
		} else {
			r.Width, r.Height = w, h
		}
	case "orig":
		w, h, err := parseIntPair(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMalformedInput, err, "region %q: bad orig %q", r.Name, value)
		}
		r.OriginalWidth, r.OriginalHeight = w, h
	case "offset":
		x, y, err := parseIntPair(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMalformedInput, err, "region %q: bad offset %q", r.Name, value)
		}
		r.OffsetX, r.OffsetY = x, y
	case "index":
		idx, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return errors.Wrap(errors.ErrCodeMalformedInput, err, "region %q: bad index %q", r.Name, value)
		}
		r.Index = idx
	default:
		// format, filter, repeat, rotate-on-page and any other
		// unrecognized key: ignored.
	}
	return nil
}

func parseIntPair(value string) (a, b int, err error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, strconv.ErrSyntax
	}
	a, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	b, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// sanitizePageName strips repeated trailing image extensions (healing
// "foo.png.png") and re-appends the outermost (rightmost) extension found,
// or ".png" if none was present.
func sanitizePageName(raw string) string {
	raw = strings.TrimSpace(raw)
	name := raw
	var stripped []string
	for {
		trimmedAny := false
		for _, ext := range imageExtensions {
			if strings.HasSuffix(strings.ToLower(name), ext) {
				name = name[:len(name)-len(ext)]
				stripped = append(stripped, ext)
				trimmedAny = true
				break
			}
		}
		if !trimmedAny {
			break
		}
	}
	canonical := ".png"
	if len(stripped) > 0 {
		canonical = stripped[0]
	}
	return name + canonical
}
