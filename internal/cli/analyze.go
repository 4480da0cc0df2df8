package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/pipeline"
)

type analyzeOpts struct {
	session        string
	output         string
	overrides      []string
	localOverrides []string
	noCache        bool
}

// analyzeCommand creates the "analyze" subcommand: it runs the skeleton
// analyzer and report aggregator over a session's ingested state (spec
// §4.2-4.3/§6) and writes the resulting AnalysisReport as JSON.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{session: defaultSessionFile}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the maximum render resolution for every ingested image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, c, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.session, "session", "i", opts.session, "session file to analyze")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report file to write (stdout if empty)")
	cmd.Flags().StringArrayVar(&opts.overrides, "override", nil, "per-image resolution override, imageKey=percent (repeatable)")
	cmd.Flags().StringArrayVar(&opts.localOverrides, "local-override", nil, "animation name with an active local scale override (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the report cache")

	return cmd
}

func parseOverrides(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeMalformedInput, "override %q: expected imageKey=percent", p)
		}
		pct, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "override %q", p)
		}
		out[key] = pct
	}
	return out, nil
}

func runAnalyze(cmd *cobra.Command, c *CLI, opts *analyzeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	snap, err := loadSession(opts.session)
	if err != nil {
		return err
	}

	overridePct, err := parseOverrides(opts.overrides)
	if err != nil {
		return err
	}
	localOverrides := make(map[string]bool, len(opts.localOverrides))
	for _, name := range opts.localOverrides {
		localOverrides[name] = true
	}

	r, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer r.Close()
	r.LoadSnapshot(snap)
	r.SetOptions(pipeline.Options{OverridePct: overridePct, LocalOverrides: localOverrides})

	prog := newProgress(logger)
	report, err := r.Analyze(ctx)
	if err != nil {
		return err
	}
	prog.done("Analyze complete")

	if err := writeJSONFile(opts.output, report); err != nil {
		return err
	}

	printSuccess("Analyzed %d image(s) across %d animation(s)", len(report.GlobalStats), len(report.Animations))
	if len(report.UnusedAssets) > 0 {
		printWarning("%d unused asset(s)", len(report.UnusedAssets))
	}
	if report.IsCanonicalDataMissing {
		printWarning("some region/mesh attachments are missing canonical width/height")
	}
	if len(report.MissingImages) > 0 {
		printWarning("%d referenced image(s) could not be resolved", len(report.MissingImages))
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}
