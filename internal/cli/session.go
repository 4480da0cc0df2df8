package cli

import (
	"os"

	"github.com/texrig/texrig/pkg/pipeline"
)

// defaultSessionFile is where ingest writes its snapshot and every other
// command reads it from, unless overridden with -i/-o (-s for clear). Commands chain
// through this file on disk rather than holding state in memory across
// invocations.
const defaultSessionFile = "texrig-session.json"

func loadSession(path string) (pipeline.Snapshot, error) {
	if path == "" {
		path = defaultSessionFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Snapshot{}, err
	}
	return pipeline.DecodeSnapshot(data)
}

func saveSession(path string, snap pipeline.Snapshot) error {
	if path == "" {
		path = defaultSessionFile
	}
	data, err := pipeline.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
