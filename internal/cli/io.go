package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/texrig/texrig/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close, making os.Stdout usable
// wherever an io.WriteCloser is expected.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout if path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeJSONFile marshals v as indented JSON to path (or stdout if empty).
func writeJSONFile(path string, v any) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readFiles loads every path in paths into a pipeline.FileAsset, tagged
// with its own path for extension-based classification by the runner.
func readFiles(paths []string) ([]pipeline.FileAsset, error) {
	assets := make([]pipeline.FileAsset, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		assets = append(assets, pipeline.FileAsset{Path: p, Data: data})
	}
	return assets, nil
}
