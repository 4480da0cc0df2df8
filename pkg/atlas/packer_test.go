package atlas

import (
	"testing"

	"github.com/texrig/texrig/pkg/model"
)

func task(key string, w, h int) model.OptimizationTask {
	return model.OptimizationTask{ImageKey: key, TargetWidth: w, TargetHeight: h}
}

func TestPack_SimpleFit(t *testing.T) {
	tasks := []model.OptimizationTask{task("a", 64, 64), task("b", 32, 32)}
	result := Pack(tasks, 128, 2)

	if len(result.Oversize) != 0 {
		t.Fatalf("unexpected oversize: %v", result.Oversize)
	}
	if len(result.Pages) != 1 {
		t.Fatalf("len(Pages) = %d, want 1", len(result.Pages))
	}
	if len(result.Pages[0].Rects) != 2 {
		t.Fatalf("len(Rects) = %d, want 2", len(result.Pages[0].Rects))
	}
}

func TestPack_OversizeTaskExcluded(t *testing.T) {
	tasks := []model.OptimizationTask{task("huge", 4096, 4096)}
	result := Pack(tasks, 2048, 2)

	if len(result.Pages) != 0 {
		t.Fatalf("len(Pages) = %d, want 0", len(result.Pages))
	}
	if len(result.Oversize) != 1 || result.Oversize[0].ImageKey != "huge" {
		t.Fatalf("Oversize = %v", result.Oversize)
	}
}

func TestPack_NoOverlapWithPadding(t *testing.T) {
	var tasks []model.OptimizationTask
	for i := 0; i < 12; i++ {
		tasks = append(tasks, task(string(rune('a'+i)), 100, 60))
	}
	result := Pack(tasks, 512, 4)

	for _, page := range result.Pages {
		for i, a := range page.Rects {
			ai := rect{X: a.X, Y: a.Y, W: a.Width + 4, H: a.Height + 4}
			for j, b := range page.Rects {
				if i == j {
					continue
				}
				bi := rect{X: b.X, Y: b.Y, W: b.Width + 4, H: b.Height + 4}
				if intersects(ai, bi) {
					t.Fatalf("padded rects overlap on page %d: %+v vs %+v", page.Index, a, b)
				}
			}
			if a.X < 0 || a.Y < 0 || a.Right() > page.Width || a.Bottom() > page.Height {
				t.Fatalf("rect out of bounds: %+v on page %dx%d", a, page.Width, page.Height)
			}
		}
	}
}

func TestPack_EfficiencyMetric(t *testing.T) {
	tasks := []model.OptimizationTask{task("a", 1024, 1024), task("b", 1024, 1024)}
	result := Pack(tasks, 2048, 2)

	if len(result.Pages) != 1 {
		t.Fatalf("len(Pages) = %d, want 1", len(result.Pages))
	}
	want := float64(2*1024*1024) / float64(2048*2048)
	if got := result.Pages[0].Efficiency; got != want {
		t.Errorf("Efficiency = %v, want %v", got, want)
	}
}

func TestPack_ExactlyFillsPageWithPadding(t *testing.T) {
	tasks := []model.OptimizationTask{task("a", 1024, 1024), task("b", 1024, 1024)}
	result := Pack(tasks, 2048, 2)

	if len(result.Oversize) != 0 {
		t.Fatalf("unexpected oversize: %v", result.Oversize)
	}
	if len(result.Pages) != 1 {
		t.Fatalf("len(Pages) = %d, want 1", len(result.Pages))
	}
	if len(result.Pages[0].Rects) != 2 {
		t.Fatalf("len(Rects) = %d, want 2", len(result.Pages[0].Rects))
	}
	for _, r := range result.Pages[0].Rects {
		if r.X < 0 || r.Y < 0 || r.Right() > 2048 || r.Bottom() > 2048 {
			t.Fatalf("rect out of bounds: %+v", r)
		}
	}
}

func TestPack_PaginatesWhenFull(t *testing.T) {
	var tasks []model.OptimizationTask
	for i := 0; i < 5; i++ {
		tasks = append(tasks, task(string(rune('a'+i)), 300, 300))
	}
	result := Pack(tasks, 512, 2)
	if len(result.Pages) < 2 {
		t.Fatalf("len(Pages) = %d, want >= 2", len(result.Pages))
	}
}
