package imageindex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/texrig/texrig/pkg/model"
)

func TestDecodeAsset_MeasuresPhysicalDimensions(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	img.Set(0, 0, color.NRGBA{A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	asset, err := DecodeAsset("Hero/Body.png", "/tmp/Hero/Body.png", model.AssetLoose, buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeAsset() error = %v", err)
	}
	if asset.PhysicalWidth != 32 || asset.PhysicalHeight != 16 {
		t.Errorf("size = %dx%d, want 32x16", asset.PhysicalWidth, asset.PhysicalHeight)
	}
	if asset.Key != "hero/body.png" {
		t.Errorf("Key = %q, want normalized", asset.Key)
	}
}

func TestDecodeAsset_RejectsGarbage(t *testing.T) {
	if _, err := DecodeAsset("x", "x", model.AssetLoose, []byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}
