package extract

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

// fakeClient serves bodies keyed by URL and records every request.
func fakeClient(t *testing.T, bodies map[string]string, requested *[]string) *httputil.Client {
	t.Helper()
	return httputil.Wrap(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if requested != nil {
			*requested = append(*requested, req.URL.String())
		}
		body, ok := bodies[req.URL.String()]
		if !ok {
			return nil, errors.New("connection refused")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})})
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestAshdiExtract(t *testing.T) {
	const (
		playerURL   = "https://ashdi.vip/vod/104233"
		playlistURL = "https://ashdi.vip/video03/2/serials/show_s01e03/hls/BKmDlA7nkA==/index.m3u8"
	)
	c := fakeClient(t, map[string]string{
		playerURL:   fixture(t, "player.html"),
		playlistURL: fixture(t, "master.m3u8"),
	}, nil)
	a := NewAshdi(c, "ashdi.vip")

	stream, err := a.Extract(context.Background(), playerURL, 0)
	require.NoError(t, err)
	assert.Equal(t, playerURL, stream.PlayerURL)
	assert.Equal(t, playlistURL, stream.PlaylistURL)
	assert.Equal(t, "https://ashdi.vip/video03/2/serials/show_s01e03/hls/720/index.m3u8", stream.URL)
	assert.Equal(t, 0, stream.Quality)

	stream, err = a.Extract(context.Background(), playerURL, 480)
	require.NoError(t, err)
	assert.Equal(t, "https://ashdi.vip/video03/2/serials/show_s01e03/hls/480/index.m3u8", stream.URL)
	assert.Equal(t, 480, stream.Quality)
}

func TestAshdiExtractEndToEndScenario(t *testing.T) {
	const (
		playerURL   = "https://foo.ashdi.vip/embed/xyz"
		playlistURL = "https://foo.ashdi.vip/stream/xyz/720/index.m3u8"
	)
	c := fakeClient(t, map[string]string{
		playerURL:   `<html><script>new Playerjs({file: "` + playlistURL + `"});</script></html>`,
		playlistURL: "#comment\nhttps://foo.ashdi.vip/stream/xyz/720/seg.ts",
	}, nil)

	stream, err := NewAshdi(c, "ashdi.vip").Extract(context.Background(), playerURL, 480)
	require.NoError(t, err)
	assert.Equal(t, playlistURL, stream.PlaylistURL)
	assert.Equal(t, "https://foo.ashdi.vip/stream/xyz/480/seg.ts", stream.URL)
}

func TestAshdiExtractRelativeEntry(t *testing.T) {
	const (
		playerURL   = "https://ashdi.vip/vod/1"
		playlistURL = "https://ashdi.vip/v/show/hls/index.m3u8"
	)
	c := fakeClient(t, map[string]string{
		playerURL:   `<script>file:"` + playlistURL + `"</script>`,
		playlistURL: "#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1\n720/index.m3u8\n",
	}, nil)

	stream, err := NewAshdi(c, "ashdi.vip").Extract(context.Background(), playerURL, 1080)
	require.NoError(t, err)
	assert.Equal(t, "https://ashdi.vip/v/show/hls/1080/index.m3u8", stream.URL)
}

func TestAshdiExtractNoPlaylist(t *testing.T) {
	const playerURL = "https://ashdi.vip/vod/0"
	var requested []string
	c := fakeClient(t, map[string]string{
		playerURL: fixture(t, "player_empty.html"),
	}, &requested)

	_, err := NewAshdi(c, "ashdi.vip").Extract(context.Background(), playerURL, 0)
	assert.ErrorIs(t, err, ErrNoPlaylist)
	assert.Equal(t, []string{playerURL}, requested)
}

func TestAshdiExtractNoManifest(t *testing.T) {
	const (
		playerURL   = "https://ashdi.vip/vod/1"
		playlistURL = "https://ashdi.vip/v/show/hls/index.m3u8"
	)
	c := fakeClient(t, map[string]string{
		playerURL:   `<script>file:"` + playlistURL + `"</script>`,
		playlistURL: "#EXTM3U\n#EXT-X-ENDLIST\n",
	}, nil)

	_, err := NewAshdi(c, "ashdi.vip").Extract(context.Background(), playerURL, 0)
	assert.ErrorIs(t, err, ErrNoManifest)
}

func TestAshdiExtractTransportError(t *testing.T) {
	c := fakeClient(t, map[string]string{}, nil)

	_, err := NewAshdi(c, "ashdi.vip").Extract(context.Background(), "https://ashdi.vip/vod/1", 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPlaylist)
	assert.Contains(t, err.Error(), "fetching player")
}

func TestAshdiExtractInvalidPlayerURL(t *testing.T) {
	var requested []string
	c := fakeClient(t, map[string]string{}, &requested)

	_, err := NewAshdi(c, "ashdi.vip").Extract(context.Background(), "//ashdi.vip/vod/1", 0)
	require.Error(t, err)
	assert.Empty(t, requested)
}
