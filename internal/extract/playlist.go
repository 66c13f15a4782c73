package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parsePlaylistURL finds the first script whose text matches pattern and
// returns the pattern's first capture group.
func parsePlaylistURL(doc *goquery.Document, pattern *regexp.Regexp) (string, bool) {
	var found string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := pattern.FindStringSubmatch(s.Text()); m != nil {
			found = m[1]
			return false
		}
		return true
	})
	return found, found != ""
}

// firstManifestLine returns the first line of an m3u8 playlist that is
// neither blank nor a comment/tag.
func firstManifestLine(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

// resolveReference returns ref unchanged when it is absolute, otherwise
// resolves it against base.
func resolveReference(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if r.IsAbs() {
		return ref, nil
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base: %w", err)
	}
	return b.ResolveReference(r).String(), nil
}

// withQuality replaces the second-to-last path segment of u with quality.
// A non-positive quality, or a URL with too few segments, is returned as is.
func withQuality(u string, quality int) string {
	if quality <= 0 {
		return u
	}

	last := strings.LastIndex(u, "/")
	if last < 0 {
		return u
	}
	prev := strings.LastIndex(u[:last], "/")
	if prev < 0 {
		return u
	}

	return u[:prev+1] + strconv.Itoa(quality) + u[last:]
}
