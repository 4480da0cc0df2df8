// Package cli implements the texrig command-line interface.
//
// This package provides commands for ingesting skeleton/atlas/image
// sources into an analysis session, running the resolution analyzer,
// planning and applying optimized resamples, repacking the results into
// atlas pages, and serving the same operations over HTTP. The CLI is
// built using cobra and supports verbose logging via charmbracelet/log.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/texrig/texrig/pkg/buildinfo"
	"github.com/texrig/texrig/pkg/cache"
	"github.com/texrig/texrig/pkg/pipeline"
	"github.com/texrig/texrig/pkg/store/mongo"
)

const appName = "texrig"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a logger writing to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "texrig",
		Short:        "texrig analyzes and optimizes 2D skeletal-animation image resolution",
		Long:         `texrig inspects a Spine-style skeleton, its texture atlas and loose images, finds the maximum resolution each image ever needs across every animation, and produces a minimum-footprint resampled and repacked image set.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.ingestCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.resampleCommand())
	root.AddCommand(c.packCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use, backed by a file cache
// unless noCache disables caching, and archiving reports to Mongo when
// TEXRIG_MONGO_URI is set.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewDefaultKeyer()
	if ws := os.Getenv("TEXRIG_WORKSPACE_ID"); ws != "" {
		keyer = cache.NewScopedKeyer(keyer, "ws:"+ws+":")
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	archive, err := newArchive(context.Background())
	if err != nil {
		return nil, err
	}
	if archive != nil {
		r.Archive = archive
	}
	return r, nil
}

// newArchive builds a mongo.Archive from TEXRIG_MONGO_URI/TEXRIG_MONGO_DB
// when configured, returning nil when no archive backend is requested.
func newArchive(ctx context.Context) (mongo.Archive, error) {
	uri := os.Getenv("TEXRIG_MONGO_URI")
	if uri == "" {
		return nil, nil
	}
	db := os.Getenv("TEXRIG_MONGO_DB")
	if db == "" {
		db = appName
	}
	return mongo.NewMongoArchive(ctx, uri, db)
}

// newCache picks a cache backend: disabled, Redis (when TEXRIG_REDIS_ADDR
// is set, for multi-instance server deployments), or the file cache.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := os.Getenv("TEXRIG_REDIS_ADDR"); addr != "" {
		return cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     addr,
			Password: os.Getenv("TEXRIG_REDIS_PASSWORD"),
		})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/texrig/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
