// Package export builds the optimized image ZIP archive: one root folder
// images_optimized/, each task's resampled file at its relative path,
// PNG regardless of the original input format.
//
// The archive container is the standard library's archive/zip;
// klauspost/compress/flate is registered as the zip writer's DEFLATE
// compressor for faster packaging of large image sets.
package export

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/pipeline"
)

const rootFolder = "images_optimized/"

// imageExtensions are recognized trailing extensions stripped from an
// image key before the canonical ".png" suffix is appended, so an
// already-extensioned key ("hero.png") doesn't double up ("hero.png.png").
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// pngName strips a recognized trailing image extension from key, if any,
// and appends ".png".
func pngName(key string) string {
	lower := strings.ToLower(key)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			key = key[:len(key)-len(ext)]
			break
		}
	}
	return key + ".png"
}

// BuildZip packages every successfully resampled task into a ZIP archive
// under images_optimized/, keyed by the task's image key with its
// extension normalized to .png. Results with no Data are skipped. A
// result carrying a non-nil Err is still written: a resample failure
// already fell back to the source blob, so the archive stays complete. A result
// whose ImageKey fails errors.ValidateImageKey (for example one carrying
// a ".." traversal segment from an ingested skeleton's attachment path)
// is skipped entirely rather than written under an attacker-controlled
// path.
func BuildZip(results []pipeline.ResampleResult) ([]byte, error) {
	sorted := make([]pipeline.ResampleResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ImageKey < sorted[j].ImageKey })

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})
	for _, res := range sorted {
		if len(res.Data) == 0 {
			continue
		}
		if err := errors.ValidateImageKey(res.ImageKey); err != nil {
			continue
		}
		f, err := w.Create(rootFolder + pngName(res.ImageKey))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create zip entry %q", res.ImageKey)
		}
		if _, err := f.Write(res.Data); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write zip entry %q", res.ImageKey)
		}
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "close zip writer")
	}
	return buf.Bytes(), nil
}
