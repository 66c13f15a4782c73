package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ashdl/internal/batch"
	"ashdl/internal/config"
	"ashdl/internal/download"
	"ashdl/internal/extract"
	"ashdl/internal/httputil"
	"ashdl/internal/logging"
	"ashdl/internal/media"
	"ashdl/internal/provider"
)

// downloadRun resolves and downloads every requested page. One HTTP client
// serves the whole batch and its connections are released on return.
func downloadRun(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	logger := logging.New(cmd.ErrOrStderr(), cfg.Debug)

	outputDir, err := cfg.ExpandOutputDir()
	if err != nil {
		return fmt.Errorf("resolving output dir: %w", err)
	}

	client := httputil.NewClient(cfg.Timeout.Duration, cfg.UserAgent)
	defer client.Close()

	runner := &batch.Runner{
		Provider:   provider.NewSite(client, cfg.PlayerHost),
		Extractor:  extract.NewAshdi(client, cfg.PlayerHost),
		Downloader: download.New(cfg.FFmpeg, outputDir, cfg.OutputFormat),
		Log:        logger,
		Quality:    cfg.Quality,
		FailFast:   cfg.FailFast,
	}

	source, urls := media.Episode, opts.episodes
	if len(opts.seasons) > 0 {
		source, urls = media.Season, opts.seasons
	}
	logger.Debug("starting batch", "source", source, "count", len(urls), "dir", outputDir, "format", cfg.OutputFormat)

	start := time.Now()
	if source == media.Season {
		err = runner.Seasons(cmd.Context(), urls)
	} else {
		err = runner.Episodes(cmd.Context(), urls)
	}
	logger.Debug("batch finished", "elapsed", time.Since(start).Round(time.Millisecond))

	return err
}
