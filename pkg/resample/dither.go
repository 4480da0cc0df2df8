package resample

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"

	"github.com/texrig/texrig/pkg/errors"
)

// postProcess applies the alpha-aware post-processing stage in place: in
// premultiplied mode, clamp R, G, B to at most A to suppress ringing
// halos that escape the alpha mask; in straight-alpha mode, leave RGB
// untouched so additive/glow pixels (R > A) survive.
func postProcess(img floatImage, mode alphaMode) {
	if mode != modePremultiplied {
		return
	}
	for i := range img.A {
		a := img.A[i]
		if img.R[i] > a {
			img.R[i] = a
		}
		if img.G[i] > a {
			img.G[i] = a
		}
		if img.B[i] > a {
			img.B[i] = a
		}
	}
}

// ditherQuantize adds triangular-distribution noise (sum of two uniforms
// minus one, on (-1, 1)) to each channel before quantizing to 8 bits.
func ditherQuantize(img floatImage) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			i := y*img.W + x
			out.SetNRGBA(x, y, color.NRGBA{
				R: ditherChannel(img.R[i]),
				G: ditherChannel(img.G[i]),
				B: ditherChannel(img.B[i]),
				A: ditherChannel(img.A[i]),
			})
		}
	}
	return out
}

func ditherChannel(v float32) uint8 {
	noise := rand.Float32() + rand.Float32() - 1
	q := v + noise
	if q < 0 {
		q = 0
	}
	if q > 255 {
		q = 255
	}
	return uint8(q + 0.5)
}

// exportPNG encodes img to PNG. A GPU texture round-trip through a
// bottom-left-origin GL surface would need a Y-flip to restore top-left
// orientation on re-upload; this pipeline never leaves top-left array
// orientation from decode through resize, so there is nothing to restore
// and no flip is applied here.
func exportPNG(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeResampleFailed, err, "encode output png")
	}
	return buf.Bytes(), nil
}
