package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_SetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	if c.Logger.GetLevel() != log.InfoLevel {
		t.Fatalf("level = %v, want Info", c.Logger.GetLevel())
	}

	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Fatalf("level = %v, want Debug", c.Logger.GetLevel())
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"ingest", "clear", "analyze", "plan", "resample", "pack", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
