// Package batch fans the resolve-and-download pipeline out over many
// episode or season URLs.
package batch

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"

	"ashdl/internal/extract"
	"ashdl/internal/media"
	"ashdl/internal/provider"
)

// Downloader writes a resolved stream to disk and returns the file path.
type Downloader interface {
	Download(ctx context.Context, stream *media.Stream) (string, error)
}

// Runner runs one pipeline per input URL, concurrently.
type Runner struct {
	Provider   provider.Provider
	Extractor  extract.Extractor
	Downloader Downloader
	Log        *log.Logger

	// Quality overrides the quality segment of every manifest URL when > 0.
	Quality int
	// FailFast cancels the remaining items on the first download failure.
	FailFast bool
}

// Episodes downloads every episode page in urls.
// Resolution failures skip the item; download failures are collected
// and returned once every item has finished.
func (r *Runner) Episodes(ctx context.Context, urls []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return r.episodes(ctx, cancel, urls)
}

// Seasons downloads every episode linked from the season pages in urls.
func (r *Runner) Seasons(ctx context.Context, urls []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g multierror.Group
	for _, seasonURL := range urls {
		seasonURL := seasonURL
		g.Go(func() error {
			episodes, err := r.Provider.EpisodeURLs(ctx, seasonURL)
			if err != nil {
				return fmt.Errorf("listing %s: %w", seasonURL, err)
			}
			r.Log.Info("found episodes", "source", media.Season, "url", seasonURL, "count", len(episodes))
			return r.episodes(ctx, cancel, episodes)
		})
	}
	return g.Wait().ErrorOrNil()
}

func (r *Runner) episodes(ctx context.Context, cancel context.CancelFunc, urls []string) error {
	var g multierror.Group
	for _, pageURL := range urls {
		pageURL := pageURL
		g.Go(func() error {
			err := r.episode(ctx, pageURL)
			if err != nil && r.FailFast {
				cancel()
			}
			return err
		})
	}
	return g.Wait().ErrorOrNil()
}

// episode runs the pipeline for a single page. Only download errors are returned.
func (r *Runner) episode(ctx context.Context, pageURL string) error {
	stream, err := r.resolve(ctx, pageURL)
	if err != nil {
		r.Log.Debug("skipping", "url", pageURL, "err", err)
		return nil
	}
	r.Log.Debug("resolved", "url", pageURL, "player", stream.PlayerURL, "manifest", stream.URL)

	path, err := r.Downloader.Download(ctx, stream)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", pageURL, err)
	}
	r.Log.Info("saved", "url", pageURL, "file", path)
	return nil
}

// resolve walks page -> player -> playlist -> manifest.
func (r *Runner) resolve(ctx context.Context, pageURL string) (*media.Stream, error) {
	playerURL, err := r.Provider.PlayerURL(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	stream, err := r.Extractor.Extract(ctx, playerURL, r.Quality)
	if err != nil {
		return nil, err
	}
	stream.PageURL = pageURL
	return stream, nil
}
