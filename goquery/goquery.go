// Package goquery implements harvest.Scraper for each supported source
// using CSS selectors over parsed listing and publication pages, plus the
// Registry that maps source identifiers to scrapers.
package goquery

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sdglab/harvest"
)

// site holds what every scraper needs: the shared fetcher and its identity.
type site struct {
	fetcher harvest.Fetcher
	info    harvest.SourceInfo
}

// Source describes the scraper.
func (s *site) Source() harvest.SourceInfo {
	return s.info
}

// document fetches a URL and parses the response as HTML.
func (s *site) document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "parse %s: %v", rawURL, err)
	}
	return doc, nil
}

var digitsPattern = regexp.MustCompile(`\d+`)

// parseLabelDigits extracts SDG goal numbers from strings such as
// "Goal 13" or "SDG 17" and returns them sorted ascending.
func parseLabelDigits(values []string) []int {
	var labels []int
	for _, v := range values {
		for _, d := range digitsPattern.FindAllString(v, -1) {
			if n, err := strconv.Atoi(d); err == nil {
				labels = append(labels, n)
			}
		}
	}
	sort.Ints(labels)
	return labels
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// parseYear extracts the first four-digit year from text. Returns 0 when absent.
func parseYear(text string) int {
	m := yearPattern.FindString(text)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}

// resolveURL joins a possibly relative href against base.
func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	r, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(r).String()
}

// pdfLinks collects hrefs ending in .pdf from a selection of anchors,
// resolved against base, deduplicated, and sorted for deterministic
// download order.
func pdfLinks(sel *goquery.Selection, base string) []harvest.File {
	seen := make(map[string]bool)
	var files []harvest.File
	sel.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.HasSuffix(href, ".pdf") {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		files = append(files, harvest.File{URL: resolved})
	})
	sort.Slice(files, func(i, j int) bool { return files[i].URL < files[j].URL })
	return files
}

var spacePattern = regexp.MustCompile(`\s+`)

// collapseSpace trims text and folds internal whitespace runs into one space.
func collapseSpace(text string) string {
	return spacePattern.ReplaceAllString(strings.TrimSpace(text), " ")
}
