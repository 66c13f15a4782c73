// Package extract resolves player URLs into stream manifest URLs by
// following the player's playlist chain.
package extract

import (
	"context"
	"errors"

	"ashdl/internal/media"
)

var (
	// ErrNoPlaylist is returned when the player page has no playlist script.
	ErrNoPlaylist = errors.New("no playlist found in player")
	// ErrNoManifest is returned when a playlist lists no stream.
	ErrNoManifest = errors.New("no manifest entry in playlist")
)

// Extractor resolves player URLs into streams.
type Extractor interface {
	Extract(ctx context.Context, playerURL string, quality int) (*media.Stream, error)
}
