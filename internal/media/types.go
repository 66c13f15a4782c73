// Package media defines shared types for the ashdl application.
package media

// Stream is the result of walking a content page down to its manifest.
type Stream struct {
	PageURL     string // Content page the chain started from
	PlayerURL   string // Embedded player iframe src
	PlaylistURL string // Quality playlist referenced by the player script
	URL         string // Final manifest URL handed to the remuxer
	Quality     int    // Requested quality override, 0 if none
}

// Source is the origin of a batch item.
type Source int

const (
	Episode Source = iota
	Season
)

func (s Source) String() string {
	switch s {
	case Episode:
		return "episode"
	case Season:
		return "season"
	default:
		return "unknown"
	}
}
