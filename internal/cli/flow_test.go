package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const flowFixtureSkeleton = `{
	"bones": [{"name": "root"}],
	"slots": [{"name": "hand-slot", "bone": "root", "attachment": "hand"}],
	"skins": {
		"default": {
			"hand-slot": {"hand": {"type": "region", "width": 40, "height": 40}}
		}
	},
	"animations": {"idle": {}}
}`

func flowFixturePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{50, 60, 70, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestCLI_IngestAnalyzePlanResampleFlow(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	skelPath := filepath.Join(dir, "hero.json")
	if err := os.WriteFile(skelPath, []byte(flowFixtureSkeleton), 0o644); err != nil {
		t.Fatal(err)
	}
	imgPath := filepath.Join(dir, "hand.png")
	if err := os.WriteFile(imgPath, flowFixturePNG(t, 80, 80), 0o644); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) error {
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		return root.ExecuteContext(context.Background())
	}

	if err := run("ingest", skelPath, imgPath); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, err := os.Stat(defaultSessionFile); err != nil {
		t.Fatalf("session file not written: %v", err)
	}

	reportPath := filepath.Join(dir, "report.json")
	if err := run("analyze", "--no-cache", "-o", reportPath); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("report file not written: %v", err)
	}

	planPath := filepath.Join(dir, "plan.json")
	if err := run("plan", "--no-cache", "--buffer", "10", "-o", planPath); err != nil {
		t.Fatalf("plan: %v", err)
	}

	zipPath := filepath.Join(dir, "images_optimized.zip")
	if err := run("resample", "-p", planPath, "-o", zipPath); err != nil {
		t.Fatalf("resample: %v", err)
	}
	if _, err := os.Stat(zipPath); err != nil {
		t.Fatalf("zip not written: %v", err)
	}

	packPath := filepath.Join(dir, "pages.json")
	if err := run("pack", "-p", planPath, "-o", packPath); err != nil {
		t.Fatalf("pack: %v", err)
	}

	if err := run("clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
}
