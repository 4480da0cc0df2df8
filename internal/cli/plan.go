package cli

import (
	"github.com/spf13/cobra"
)

type planOpts struct {
	session   string
	output    string
	bufferPct float64
	noCache   bool
}

// planCommand creates the "plan" subcommand: it runs the optimization
// planner over the session's current report at the given safety-buffer
// percentage and writes the resulting task list.
func (c *CLI) planCommand() *cobra.Command {
	opts := planOpts{session: defaultSessionFile}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build the optimization task list for a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, c, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.session, "session", "i", opts.session, "session file to plan from")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "task-list file to write (stdout if empty)")
	cmd.Flags().Float64Var(&opts.bufferPct, "buffer", 0, "safety buffer percentage added to every target size")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the report/plan cache")

	return cmd
}

func runPlan(cmd *cobra.Command, c *CLI, opts *planOpts) error {
	ctx := cmd.Context()

	snap, err := loadSession(opts.session)
	if err != nil {
		return err
	}

	r, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer r.Close()
	logger := r.Logger
	r.LoadSnapshot(snap)

	prog := newProgress(logger)
	tasks, err := r.Plan(ctx, opts.bufferPct)
	if err != nil {
		return err
	}
	prog.done("Plan complete")

	if err := writeJSONFile(opts.output, tasks); err != nil {
		return err
	}

	resizes := 0
	for _, t := range tasks {
		if t.IsResize {
			resizes++
		}
	}
	printSuccess("Planned %d task(s), %d resize(s), %d copy-through(s)", len(tasks), resizes, len(tasks)-resizes)
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}
