package mongo

import (
	"context"
	"testing"

	"github.com/texrig/texrig/pkg/model"
)

func TestNullArchive_IsNoop(t *testing.T) {
	var a NullArchive
	ctx := context.Background()

	id, err := a.Save(ctx, []string{"hero"}, model.AnalysisReport{})
	if err != nil || id != "" {
		t.Errorf("Save() = %q, %v, want \"\", nil", id, err)
	}
	if got, err := a.Get(ctx, "anything"); got != nil || err != nil {
		t.Errorf("Get() = %v, %v, want nil, nil", got, err)
	}
	if got, err := a.List(ctx, "", 0); got != nil || err != nil {
		t.Errorf("List() = %v, %v, want nil, nil", got, err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
