package resample

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp" // registers the "webp" format with image.Decode

	"github.com/texrig/texrig/pkg/errors"
)

// alphaMode is the pipeline's working hypothesis about how RGB and alpha
// interact in the source's pixel data.
type alphaMode int

const (
	modeStraight alphaMode = iota
	modePremultiplied
)

// straightAlphaEvidenceThreshold is the tolerance for compression noise
// when deciding a "premultiplied" hint is actually lying.
const straightAlphaEvidenceThreshold = 2.0

// Options configures a single Resample call.
type Options struct {
	TargetWidth, TargetHeight int
	// IsSourcePremultiplied is the caller's hint; Resample verifies it
	// against the decoded pixels before trusting it.
	IsSourcePremultiplied bool
}

// Resample runs the full seven-stage pipeline over a source image blob
// and returns an encoded PNG at the target dimensions.
func Resample(src []byte, opts Options) ([]byte, error) {
	if opts.TargetWidth <= 0 || opts.TargetHeight <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "resample: target dimensions must be positive, got %dx%d", opts.TargetWidth, opts.TargetHeight)
	}

	// Stage 1 — raw import: decode without implicit premultiplication
	// (Go's standard decoders already hand back straight-alpha color.NRGBA
	// for PNG), then widen to float32 per channel.
	decoded, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResampleFailed, err, "decode source image")
	}
	img := toFloatImage(decoded)

	// Stage 2 — alpha-mode auto-detection.
	mode := modeStraight
	if opts.IsSourcePremultiplied {
		mode = modePremultiplied
		if hasStraightAlphaEvidence(img) {
			mode = modeStraight
		}
	}

	// Stage 3 — pyramid reduction.
	img = reducePyramid(img, opts.TargetWidth, opts.TargetHeight)

	// Stage 4 — separable Lanczos-3.
	img = lanczosResize(img, opts.TargetWidth, opts.TargetHeight)

	// Stage 5 — alpha-aware post-processing.
	postProcess(img, mode)

	// Stage 6 — dither and quantize to 8 bits.
	quantized := ditherQuantize(img)

	// Stage 7 — PNG export; orientation stays top-left throughout, so no
	// flip is applied.
	return exportPNG(quantized)
}

// ResampleTask runs Resample and, on failure, falls back to the original
// blob unchanged — a resampler failure on one task never aborts the
// batch. The returned error, if non-nil, is informational — the
// returned bytes are always usable.
func ResampleTask(src []byte, opts Options) ([]byte, error) {
	out, err := Resample(src, opts)
	if err != nil {
		return src, errors.Wrap(errors.ErrCodeResampleFailed, err, "resample failed, using source unchanged")
	}
	return out, nil
}

func toFloatImage(src image.Image) floatImage {
	b := src.Bounds()
	out := newFloatImage(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := toNRGBAChannels(src.At(x, y))
			i := (y-b.Min.Y)*out.W + (x - b.Min.X)
			out.R[i] = float32(r)
			out.G[i] = float32(g)
			out.B[i] = float32(bl)
			out.A[i] = float32(a)
		}
	}
	return out
}

func toNRGBAChannels(c color.Color) (r, g, b, a uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B, n.A
}

// hasStraightAlphaEvidence scans every 4th pixel for a channel exceeding
// alpha by more than the compression-noise tolerance — evidence the
// source is not actually premultiplied despite the hint.
func hasStraightAlphaEvidence(img floatImage) bool {
	n := len(img.A)
	for i := 0; i < n; i += 4 {
		a := img.A[i]
		if img.R[i]-a > straightAlphaEvidenceThreshold ||
			img.G[i]-a > straightAlphaEvidenceThreshold ||
			img.B[i]-a > straightAlphaEvidenceThreshold {
			return true
		}
	}
	return false
}
