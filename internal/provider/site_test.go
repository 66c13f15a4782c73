package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ashdl/internal/httputil"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// fixtureClient serves testdata files keyed by request URL.
func fixtureClient(t *testing.T, pages map[string]string) *httputil.Client {
	t.Helper()
	return httputil.Wrap(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		name, ok := pages[req.URL.String()]
		if !ok {
			return nil, errors.New("connection refused")
		}
		data, err := os.ReadFile("testdata/" + name)
		if err != nil {
			return nil, err
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(string(data))),
		}, nil
	})})
}

func TestSitePlayerURL(t *testing.T) {
	c := fixtureClient(t, map[string]string{
		"https://example.com/ep3.html":  "episode.html",
		"https://example.com/soon.html": "episode_no_player.html",
	})
	s := NewSite(c, "ashdi.vip")

	src, err := s.PlayerURL(context.Background(), "https://example.com/ep3.html")
	require.NoError(t, err)
	assert.Equal(t, "https://ashdi.vip/vod/104233", src)

	_, err = s.PlayerURL(context.Background(), "https://example.com/soon.html")
	assert.ErrorIs(t, err, ErrNoPlayer)

	_, err = s.PlayerURL(context.Background(), "https://example.com/offline.html")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPlayer)
}

func TestSitePlayerHostConfigurable(t *testing.T) {
	c := fixtureClient(t, map[string]string{
		"https://example.com/ep3.html": "episode.html",
	})
	s := NewSite(c, "youtube.com")

	src, err := s.PlayerURL(context.Background(), "https://example.com/ep3.html")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", src)
}

func TestSiteEpisodeURLs(t *testing.T) {
	seasonURL := "https://example.com/series/show/season-1/"
	c := fixtureClient(t, map[string]string{seasonURL: "season.html"})
	s := NewSite(c, "ashdi.vip")

	links, err := s.EpisodeURLs(context.Background(), seasonURL)
	require.NoError(t, err)
	assert.Len(t, links, 3)

	_, err = s.EpisodeURLs(context.Background(), "https://example.com/series/other/")
	assert.Error(t, err)
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"https://ashdi.vip/vod/1", "https://ashdi.vip/vod/1"},
		{"//ashdi.vip/vod/1", "https://ashdi.vip/vod/1"},
		{"/embed/ashdi.vip/1", "https://example.com/embed/ashdi.vip/1"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := absoluteURL("https://example.com/series/show/ep1.html", tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
