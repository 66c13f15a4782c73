package extract

import (
	"context"
	"fmt"
	"regexp"

	"ashdl/internal/httputil"
	"ashdl/internal/media"
)

// Ashdi extracts streams from ashdi player frames.
type Ashdi struct {
	client      *httputil.Client
	filePattern *regexp.Regexp
}

// NewAshdi creates an extractor for players served from playerHost.
func NewAshdi(client *httputil.Client, playerHost string) *Ashdi {
	return &Ashdi{
		client:      client,
		filePattern: regexp.MustCompile(`file:.*"(.*` + regexp.QuoteMeta(playerHost) + `.*)"`),
	}
}

// Extract walks from a player URL to the manifest of a single stream.
// A positive quality replaces the quality segment of the manifest URL.
func (a *Ashdi) Extract(ctx context.Context, playerURL string, quality int) (*media.Stream, error) {
	if err := httputil.ValidateURL(playerURL); err != nil {
		return nil, fmt.Errorf("invalid player URL: %w", err)
	}

	playlistURL, err := a.playlistURL(ctx, playerURL)
	if err != nil {
		return nil, err
	}

	manifestURL, err := a.manifestURL(ctx, playlistURL, quality)
	if err != nil {
		return nil, err
	}

	return &media.Stream{
		PlayerURL:   playerURL,
		PlaylistURL: playlistURL,
		URL:         manifestURL,
		Quality:     quality,
	}, nil
}

func (a *Ashdi) playlistURL(ctx context.Context, playerURL string) (string, error) {
	doc, err := a.client.GetDocument(ctx, playerURL)
	if err != nil {
		return "", fmt.Errorf("fetching player: %w", err)
	}

	u, ok := parsePlaylistURL(doc, a.filePattern)
	if !ok {
		return "", fmt.Errorf("%s: %w", playerURL, ErrNoPlaylist)
	}
	return u, nil
}

func (a *Ashdi) manifestURL(ctx context.Context, playlistURL string, quality int) (string, error) {
	text, err := a.client.GetText(ctx, playlistURL)
	if err != nil {
		return "", fmt.Errorf("fetching playlist: %w", err)
	}

	line, ok := firstManifestLine(text)
	if !ok {
		return "", fmt.Errorf("%s: %w", playlistURL, ErrNoManifest)
	}

	u, err := resolveReference(playlistURL, line)
	if err != nil {
		return "", fmt.Errorf("resolving manifest entry %q: %w", line, err)
	}

	return withQuality(u, quality), nil
}
