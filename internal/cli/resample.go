package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texrig/texrig/internal/export"
	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
	"github.com/texrig/texrig/pkg/pipeline"
)

type resampleOpts struct {
	session  string
	taskFile string
	outDir   string
}

// resampleCommand creates the "resample" subcommand: it runs the image
// resampler over every task in a plan. A task that fails to resample
// still produces its fallback source bytes with a warning, never
// aborting the batch. An output path ending in ".zip" produces the
// images_optimized/ archive; otherwise each result is written as a
// standalone PNG under a directory.
func (c *CLI) resampleCommand() *cobra.Command {
	opts := resampleOpts{session: defaultSessionFile, outDir: "images_optimized.zip"}

	cmd := &cobra.Command{
		Use:   "resample",
		Short: "Resample every planned task to its target resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResample(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.session, "session", "i", opts.session, "session file holding the source images")
	cmd.Flags().StringVarP(&opts.taskFile, "plan", "p", "", "task-list file produced by \"plan\" (required)")
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", opts.outDir, "output: a .zip archive, or a directory of loose PNGs")
	cmd.MarkFlagRequired("plan")

	return cmd
}

func runResample(cmd *cobra.Command, opts *resampleOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	snap, err := loadSession(opts.session)
	if err != nil {
		return err
	}
	tasks, err := loadTasks(opts.taskFile)
	if err != nil {
		return err
	}

	r := pipeline.NewRunner(nil, nil, logger)
	r.LoadSnapshot(snap)

	prog := newProgress(logger)
	results, err := r.ResampleBatch(ctx, tasks)
	if err != nil {
		return err
	}
	prog.done("Resample complete")

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			printWarning("%s: %v (wrote source fallback)", res.ImageKey, res.Err)
		}
	}

	if strings.HasSuffix(opts.outDir, ".zip") {
		data, err := export.BuildZip(results)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.outDir, data, 0o644); err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return err
		}
		for _, res := range results {
			if err := errors.ValidateImageKey(res.ImageKey); err != nil {
				printWarning("%s: %v (skipped)", res.ImageKey, err)
				continue
			}
			path := filepath.Join(opts.outDir, res.ImageKey+".png")
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, res.Data, 0o644); err != nil {
				return err
			}
		}
	}

	printSuccess("Resampled %d image(s), %d failure(s)", len(results), failed)
	printFile(opts.outDir)
	return nil
}

func loadTasks(path string) ([]model.OptimizationTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tasks []model.OptimizationTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
