package resample

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// lanczos3 is a Lanczos kernel of radius 3 (a 6-tap support on each output
// sample), defined the way golang.org/x/image/draw expects: Support is the
// kernel's half-width and At evaluates it at a tap offset in source pixels.
// Kernel.Scale clamps tap indices to the source bounds and renormalizes
// weights to sum to 1 internally.
var lanczos3 = draw.Kernel{Support: 3, At: lanczosAt}

func lanczosAt(t float64) float64 {
	t = math.Abs(t)
	if t < 1e-9 {
		return 1
	}
	if t >= 3 {
		return 0
	}
	return sinc(t) * sinc(t/3)
}

func sinc(x float64) float64 {
	px := math.Pi * x
	return math.Sin(px) / px
}

// floatImage is the pipeline's working buffer: four independent float32
// channel planes in [0, 255], wide enough to hold ringing overshoot from
// the Lanczos pass before stage 5 clamps it back down.
type floatImage struct {
	W, H    int
	R, G, B, A []float32
}

func newFloatImage(w, h int) floatImage {
	n := w * h
	return floatImage{W: w, H: h, R: make([]float32, n), G: make([]float32, n), B: make([]float32, n), A: make([]float32, n)}
}

// reducePyramid halves img's dimensions by averaging 2×2 blocks, repeating
// while both dimensions still exceed twice the target. Channels are
// reduced independently — safe in both alpha modes, since no cross-channel
// math happens here.
func reducePyramid(img floatImage, targetW, targetH int) floatImage {
	for img.W > 2*targetW && img.H > 2*targetH {
		img = reduceHalf(img)
	}
	return img
}

func reduceHalf(img floatImage) floatImage {
	w, h := img.W/2, img.H/2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := newFloatImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := x*2, y*2
			var rs, gs, bs, as float32
			n := 0
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					px, py := sx+dx, sy+dy
					if px >= img.W || py >= img.H {
						continue
					}
					i := py*img.W + px
					rs += img.R[i]
					gs += img.G[i]
					bs += img.B[i]
					as += img.A[i]
					n++
				}
			}
			if n == 0 {
				n = 1
			}
			j := y*w + x
			out.R[j] = rs / float32(n)
			out.G[j] = gs / float32(n)
			out.B[j] = bs / float32(n)
			out.A[j] = as / float32(n)
		}
	}
	return out
}

// lanczosResize resizes img to targetW×targetH through x/image/draw's
// separable Kernel.Scale, routing the channel planes through image.NRGBA64
// containers. Kernel.Scale reads the source as premultiplied color and the
// NRGBA64 destination stores the result un-premultiplied again, so RGB is
// weighted by alpha during the resize.
func lanczosResize(img floatImage, targetW, targetH int) floatImage {
	src := toNRGBA64(img)
	dst := image.NewNRGBA64(image.Rect(0, 0, targetW, targetH))
	lanczos3.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return fromNRGBA64(dst)
}

func toNRGBA64(img floatImage) *image.NRGBA64 {
	out := image.NewNRGBA64(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			i := y*img.W + x
			out.SetNRGBA64(x, y, color.NRGBA64{
				R: to16(img.R[i]), G: to16(img.G[i]), B: to16(img.B[i]), A: to16(img.A[i]),
			})
		}
	}
	return out
}

func to16(v float32) uint16 {
	x := v * 257
	if x < 0 {
		x = 0
	}
	if x > 65535 {
		x = 65535
	}
	return uint16(x + 0.5)
}

func fromNRGBA64(im *image.NRGBA64) floatImage {
	b := im.Bounds()
	out := newFloatImage(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := im.NRGBA64At(x, y)
			i := (y-b.Min.Y)*out.W + (x - b.Min.X)
			out.R[i] = from16(c.R)
			out.G[i] = from16(c.G)
			out.B[i] = from16(c.B)
			out.A[i] = from16(c.A)
		}
	}
	return out
}

func from16(v uint16) float32 {
	return float32(v) / 257
}
