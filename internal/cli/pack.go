package cli

import (
	"github.com/spf13/cobra"

	"github.com/texrig/texrig/pkg/pipeline"
)

type packOpts struct {
	taskFile string
	output   string
	pageSize int
	padding  int
}

// packCommand creates the "pack" subcommand: it lays out a task list onto
// atlas pages with the MaxRects packer and writes the resulting page
// layout as JSON.
func (c *CLI) packCommand() *cobra.Command {
	opts := packOpts{pageSize: 2048, padding: 2}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack a task list onto atlas pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.taskFile, "plan", "p", "", "task-list file produced by \"plan\" (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "page-layout file to write (stdout if empty)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", opts.pageSize, "square atlas page size in pixels")
	cmd.Flags().IntVar(&opts.padding, "padding", opts.padding, "padding reserved on each rect's right and bottom edges")
	cmd.MarkFlagRequired("plan")

	return cmd
}

func runPack(cmd *cobra.Command, opts *packOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	tasks, err := loadTasks(opts.taskFile)
	if err != nil {
		return err
	}

	r := pipeline.NewRunner(nil, nil, logger)
	prog := newProgress(logger)
	result, err := r.Pack(ctx, tasks, pipeline.PackOptions{PageSize: opts.pageSize, Padding: opts.padding})
	if err != nil {
		return err
	}
	prog.done("Pack complete")

	if err := writeJSONFile(opts.output, result); err != nil {
		return err
	}

	printSuccess("Packed %d task(s) onto %d page(s), %d oversize", len(tasks), len(result.Pages), len(result.Oversize))
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}
