package resample

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestResample_DownscalesSolidColor(t *testing.T) {
	src := solidPNG(t, 64, 64, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	out, err := Resample(src, Options{TargetWidth: 16, TargetHeight: 16})
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("output size = %dx%d, want 16x16", b.Dx(), b.Dy())
	}

	// Solid-color input resamples to (approximately) the same color; allow
	// slack for triangular dither noise.
	c := color.NRGBAModel.Convert(decoded.At(8, 8)).(color.NRGBA)
	if abs8(c.R, 200) > 3 || abs8(c.G, 100) > 3 || abs8(c.B, 50) > 3 || abs8(c.A, 255) > 3 {
		t.Errorf("center pixel = %+v, want ~{200,100,50,255}", c)
	}
}

func abs8(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestResample_RejectsNonPositiveTarget(t *testing.T) {
	src := solidPNG(t, 4, 4, color.NRGBA{A: 255})
	if _, err := Resample(src, Options{TargetWidth: 0, TargetHeight: 4}); err == nil {
		t.Fatal("expected error for zero target width")
	}
}

func TestResampleTask_FallsBackOnFailure(t *testing.T) {
	bad := []byte("not an image")
	out, err := ResampleTask(bad, Options{TargetWidth: 8, TargetHeight: 8})
	if err == nil {
		t.Fatal("expected a reported error")
	}
	if string(out) != string(bad) {
		t.Error("expected fallback to return the original bytes unchanged")
	}
}

func TestPostProcess_ClampsRGBToAlphaInPremultipliedMode(t *testing.T) {
	img := newFloatImage(1, 1)
	img.R[0], img.G[0], img.B[0], img.A[0] = 250, 250, 250, 100
	postProcess(img, modePremultiplied)
	if img.R[0] != 100 || img.G[0] != 100 || img.B[0] != 100 {
		t.Errorf("got R=%v G=%v B=%v, want all clamped to 100", img.R[0], img.G[0], img.B[0])
	}
}

func TestPostProcess_LeavesStraightAlphaUntouched(t *testing.T) {
	img := newFloatImage(1, 1)
	img.R[0], img.A[0] = 250, 100
	postProcess(img, modeStraight)
	if img.R[0] != 250 {
		t.Errorf("R = %v, want untouched 250", img.R[0])
	}
}

func TestReducePyramid_HalvesUntilWithinFactorOfTwo(t *testing.T) {
	img := newFloatImage(64, 64)
	out := reducePyramid(img, 10, 10)
	// Stops once either dim is <= 2*target (20): 64->32->16 stops since 16<=20.
	if out.W != 16 || out.H != 16 {
		t.Errorf("reducePyramid size = %dx%d, want 16x16", out.W, out.H)
	}
}

func TestHasStraightAlphaEvidence(t *testing.T) {
	straight := newFloatImage(2, 2)
	straight.R[0], straight.A[0] = 250, 10 // additive/glow pixel

	if !hasStraightAlphaEvidence(straight) {
		t.Error("expected evidence of straight alpha")
	}

	pma := newFloatImage(2, 2)
	pma.R[0], pma.A[0] = 100, 100
	if hasStraightAlphaEvidence(pma) {
		t.Error("expected no evidence of straight alpha")
	}
}
