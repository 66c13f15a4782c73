package provider

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"ashdl/internal/httputil"
)

// Site implements Provider for pages that embed the ashdi player.
type Site struct {
	client      *httputil.Client
	hostPattern *regexp.Regexp
}

// NewSite creates a Site that looks for player frames served from playerHost.
func NewSite(client *httputil.Client, playerHost string) *Site {
	return &Site{
		client:      client,
		hostPattern: regexp.MustCompile(`.*` + regexp.QuoteMeta(playerHost) + `.*`),
	}
}

// PlayerURL fetches an episode page and returns its player frame address.
func (s *Site) PlayerURL(ctx context.Context, pageURL string) (string, error) {
	doc, err := s.client.GetDocument(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetching episode page: %w", err)
	}

	src, ok := parsePlayerURL(doc, s.hostPattern)
	if !ok {
		return "", fmt.Errorf("%s: %w", pageURL, ErrNoPlayer)
	}
	return absoluteURL(pageURL, src)
}

// EpisodeURLs fetches a season page and returns the episode links it lists.
func (s *Site) EpisodeURLs(ctx context.Context, seasonURL string) ([]string, error) {
	doc, err := s.client.GetDocument(ctx, seasonURL)
	if err != nil {
		return nil, fmt.Errorf("fetching season page: %w", err)
	}
	return parseEpisodeLinks(doc, seasonURL), nil
}

// absoluteURL resolves protocol-relative and relative frame sources against the page.
func absoluteURL(pageURL, src string) (string, error) {
	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing player URL %q: %w", src, err)
	}
	if ref.IsAbs() {
		return src, nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing page URL: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}
