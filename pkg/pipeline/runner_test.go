package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/texrig/texrig/pkg/cache"
)

const fixtureSkeleton = `{
	"bones": [
		{"name": "root"},
		{"name": "arm", "parent": "root"}
	],
	"slots": [
		{"name": "hand-slot", "bone": "arm", "attachment": "hand"}
	],
	"skins": {
		"default": {
			"hand-slot": {
				"hand": {"type": "region", "width": 100, "height": 100}
			}
		}
	},
	"animations": {
		"grow": {
			"bones": {
				"arm": {
					"scale": [
						{"time": 0, "x": 1, "y": 1},
						{"time": 1, "x": 2, "y": 2}
					]
				}
			}
		}
	}
}`

func fixturePNG(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func TestRunner_IngestAnalyzePlanResamplePack(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), cache.NewDefaultKeyer(), nil)
	ctx := context.Background()

	assets := []FileAsset{
		{Path: "hero.json", Data: []byte(fixtureSkeleton)},
		{Path: "hand.png", Data: fixturePNG(50, 50)},
	}

	ingestResult, err := r.Ingest(ctx, assets)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(ingestResult.SkeletonsLoaded) != 1 || ingestResult.SkeletonsLoaded[0] != "hero" {
		t.Fatalf("SkeletonsLoaded = %v", ingestResult.SkeletonsLoaded)
	}
	if ingestResult.ImagesLoaded != 1 {
		t.Fatalf("ImagesLoaded = %d, want 1", ingestResult.ImagesLoaded)
	}

	report, err := r.Analyze(ctx)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(report.GlobalStats) != 1 {
		t.Fatalf("GlobalStats = %+v", report.GlobalStats)
	}
	stat := report.GlobalStats[0]
	if stat.ImageKey != "hand" {
		t.Errorf("ImageKey = %q, want hand", stat.ImageKey)
	}
	// arm scales to 2x over the "grow" animation; the region's canonical
	// 100x100 footprint should dominate over the 50x50 physical decode.
	if stat.MaxRenderWidth != 200 || stat.MaxRenderHeight != 200 {
		t.Errorf("render size = %dx%d, want 200x200", stat.MaxRenderWidth, stat.MaxRenderHeight)
	}

	tasks, err := r.Plan(ctx, 10)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("tasks = %+v", tasks)
	}
	task := tasks[0]
	if task.ImageKey != "hand" {
		t.Errorf("task.ImageKey = %q, want hand", task.ImageKey)
	}
	// the plan target (220x220 buffered) exceeds the physical source
	// (50x50), so Plan clamps to the source size and this becomes a copy.
	if task.IsResize {
		t.Errorf("expected a copy (clamped to physical size), got resize to %dx%d", task.TargetWidth, task.TargetHeight)
	}

	resampled := r.Resample(ctx, task)
	if resampled.Err != nil {
		t.Fatalf("Resample() error = %v", resampled.Err)
	}
	if len(resampled.Data) == 0 {
		t.Error("expected non-empty resampled output")
	}

	packed, err := r.Pack(ctx, tasks, PackOptions{PageSize: 1024, Padding: 2})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(packed.Pages) != 1 || len(packed.Pages[0].Rects) != 1 {
		t.Fatalf("pack result = %+v", packed)
	}
}

func TestRunner_IngestSkipsMalformedSourceButContinues(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	result, err := r.Ingest(ctx, []FileAsset{
		{Path: "broken.json", Data: []byte(`{not json`)},
		{Path: "hand.png", Data: fixturePNG(10, 10)},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for the malformed skeleton")
	}
	if result.ImagesLoaded != 1 {
		t.Errorf("ImagesLoaded = %d, want 1 despite the malformed skeleton", result.ImagesLoaded)
	}
}

func TestRunner_Clear(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	if _, err := r.Ingest(ctx, []FileAsset{{Path: "hero.json", Data: []byte(fixtureSkeleton)}}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	r.Clear()

	report, err := r.Analyze(ctx)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(report.Animations) != 0 {
		t.Errorf("expected no animations after Clear, got %+v", report.Animations)
	}
}

func TestRunner_AnalyzeCachesResult(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, cache.NewDefaultKeyer(), nil)
	ctx := context.Background()
	if _, err := r.Ingest(ctx, []FileAsset{
		{Path: "hero.json", Data: []byte(fixtureSkeleton)},
		{Path: "hand.png", Data: fixturePNG(50, 50)},
	}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	first, err := r.Analyze(ctx)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := r.Analyze(ctx)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(first.GlobalStats) != len(second.GlobalStats) {
		t.Errorf("cached report diverged: %+v vs %+v", first.GlobalStats, second.GlobalStats)
	}
}
