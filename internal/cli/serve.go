package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/texrig/texrig/internal/api"
)

type serveOpts struct {
	addr    string
	noCache bool
}

// serveCommand creates the "serve" subcommand: it exposes the same
// ingest/clear/analyze/plan/resample/pack operations as a small REST API,
// for a UI layer to call over HTTP instead of the CLI's file-based
// session chain.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the invoker commands over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, c, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "address to listen on")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the report/plan cache")

	return cmd
}

func runServe(cmd *cobra.Command, c *CLI, opts *serveOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:    opts.addr,
		Handler: api.New(runner, c.Logger).Router(),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	c.Logger.Infof("listening on %s", opts.addr)

	select {
	case <-cmd.Context().Done():
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
