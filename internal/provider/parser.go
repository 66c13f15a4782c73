package provider

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parsePlayerURL returns the src of the first iframe whose address matches hostPattern.
func parsePlayerURL(doc *goquery.Document, hostPattern *regexp.Regexp) (string, bool) {
	var src string
	doc.Find("iframe[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v := s.AttrOr("src", "")
		if hostPattern.MatchString(v) {
			src = v
			return false
		}
		return true
	})
	return src, src != ""
}

// parseEpisodeLinks extracts every anchor href that starts with prefix.
// The comparison is an exact, case-sensitive string prefix; relative links
// never match. Duplicates are dropped, keeping page order.
func parseEpisodeLinks(doc *goquery.Document, prefix string) []string {
	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(href, prefix) || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})

	return links
}
