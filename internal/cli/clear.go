package cli

import (
	"github.com/spf13/cobra"

	"github.com/texrig/texrig/pkg/pipeline"
)

// clearCommand creates the "clear" subcommand: it discards a session's
// image index and ingested skeletons, leaving an empty snapshot in place
// of the session file.
func (c *CLI) clearCommand() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset a session to empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := pipeline.NewRunner(nil, nil, loggerFromContext(cmd.Context()))
			r.Clear()
			if err := saveSession(session, r.Snapshot()); err != nil {
				return err
			}
			printSuccess("Session cleared")
			printFile(session)
			return nil
		},
	}

	cmd.Flags().StringVarP(&session, "session", "s", defaultSessionFile, "session file to reset")
	return cmd
}
