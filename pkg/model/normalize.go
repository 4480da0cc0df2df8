package model

import "strings"

// NormalizeKey canonicalizes an image-lookup key: backslashes become
// forward slashes, the result is trimmed and lowercased. The original
// path (pre-normalization) should be kept separately where it matters
// (e.g. ImageAsset.SourcePath) — normalization here is for lookup only.
func NormalizeKey(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	return strings.ToLower(strings.TrimSpace(path))
}

// StripExtensions repeatedly strips one of the given extensions from the
// end of name, healing doubled extensions like "foo.png.png" → "foo".
func StripExtensions(name string, exts ...string) string {
	for {
		trimmed := false
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) {
				name = name[:len(name)-len(ext)]
				trimmed = true
			}
		}
		if !trimmed {
			return name
		}
	}
}
