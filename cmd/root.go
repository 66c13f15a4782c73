// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ashdl/internal/config"
	"ashdl/internal/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// options holds the raw flag values of one invocation.
type options struct {
	episodes  []string
	seasons   []string
	quality   int
	format    string
	outputDir string
	failFast  bool
	debug     bool
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&options{})
}

// buildRootCmd binds the command's flags to opts.
func buildRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ashdl (--episode URL... | --season URL...)",
		Short: "Download episodes and seasons from ashdi-embedded pages",
		Long: `ashdl resolves the ashdi player embedded in each page down to its stream
manifest and remuxes it into a local file with ffmpeg, without re-encoding.
All pages are processed concurrently.`,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return downloadRun(cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.episodes, "episode", "e", nil, "Episode page URL (repeatable)")
	f.StringArrayVarP(&opts.seasons, "season", "s", nil, "Season page URL (repeatable)")
	f.IntVarP(&opts.quality, "quality", "q", 0, "Replace the quality segment of the stream URL, e.g. 480")
	f.StringVarP(&opts.format, "output-format", "o", "", "Output container extension (default: mp4)")
	f.StringVarP(&opts.outputDir, "output-dir", "d", "", "Directory to write files to (default: current)")
	f.BoolVar(&opts.failFast, "fail-fast", false, "Stop all downloads on the first failure")
	f.BoolVarP(&opts.debug, "debug", "x", false, "Debug logging to stderr")

	cmd.MarkFlagsMutuallyExclusive("episode", "season")
	cmd.MarkFlagsOneRequired("episode", "season")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ashdl %s\n", Version)
		},
	}
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight work.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("quality") {
		if opts.quality <= 0 {
			return nil, fmt.Errorf("quality must be positive, got %d", opts.quality)
		}
		cfg.Quality = opts.quality
	}
	if opts.format != "" {
		cfg.OutputFormat = opts.format
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.failFast {
		cfg.FailFast = true
	}
	if opts.debug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	for _, u := range append(append([]string{}, opts.episodes...), opts.seasons...) {
		if err := httputil.ValidateURL(u); err != nil {
			return nil, fmt.Errorf("invalid URL %q: %w", u, err)
		}
	}

	return cfg, nil
}
