package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/texrig/texrig/pkg/pipeline"
)

type ingestOpts struct {
	session string
	output  string
}

// ingestCommand creates the "ingest" subcommand: it merges skeleton
// documents, atlas manifests, and loose images into a session, additive
// across calls, and writes the resulting state to a snapshot file the
// rest of the subcommands chain through.
func (c *CLI) ingestCommand() *cobra.Command {
	opts := ingestOpts{session: defaultSessionFile, output: defaultSessionFile}

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Load skeleton documents, atlas manifests, and loose images into a session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.session, "session", "i", opts.session, "existing session file to merge into (skipped if absent)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "session file to write")

	return cmd
}

func runIngest(cmd *cobra.Command, opts *ingestOpts, paths []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	assets, err := readFiles(paths)
	if err != nil {
		return err
	}

	r := pipeline.NewRunner(nil, nil, logger)
	if snap, err := loadSession(opts.session); err == nil {
		r.LoadSnapshot(snap)
		logger.Debugf("merging into existing session %s", opts.session)
	} else if !os.IsNotExist(err) {
		return err
	}

	prog := newProgress(logger)
	result, err := r.Ingest(ctx, assets)
	if err != nil {
		return err
	}
	prog.done("Ingest complete")

	if err := saveSession(opts.output, r.Snapshot()); err != nil {
		return err
	}

	printSuccess("Ingested %d skeleton(s), %d atlas(es), %d image(s)",
		len(result.SkeletonsLoaded), result.AtlasesLoaded, result.ImagesLoaded)
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	printFile(opts.output)
	return nil
}
