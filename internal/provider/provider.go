// Package provider scrapes content pages of the streaming site: the
// embedded player of an episode page and the episode links of a season page.
package provider

import (
	"context"
	"errors"
)

// ErrNoPlayer is returned when a page embeds no matching player frame.
var ErrNoPlayer = errors.New("no player frame found")

// Provider is the interface content sites must implement.
type Provider interface {
	// PlayerURL returns the embedded player address of an episode page.
	PlayerURL(ctx context.Context, pageURL string) (string, error)

	// EpisodeURLs returns the episode page links listed on a season page.
	EpisodeURLs(ctx context.Context, seasonURL string) ([]string, error)
}
