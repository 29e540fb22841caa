package goquery

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sdglab/harvest"
)

// Ensure IOM implements harvest.Scraper at compile time.
var _ harvest.Scraper = (*IOM)(nil)

// IOM scrapes IOM Blogs, News and Stories (https://www.iom.int/search).
// Unlike the file-based sources it collects article text: the body is
// extracted from the page and converted to Markdown. When none of the
// known content containers are present, a generic boilerplate-removing
// extractor takes over.
type IOM struct {
	site
	extractor harvest.Extractor
	converter harvest.Converter
}

// NewIOM creates the IOM scraper.
func NewIOM(fetcher harvest.Fetcher, extractor harvest.Extractor, converter harvest.Converter) *IOM {
	return &IOM{
		site: site{
			fetcher: fetcher,
			info: harvest.SourceInfo{
				ID:      "iom",
				Name:    "IOM Blogs, News and Stories",
				BaseURL: "https://www.iom.int",
			},
		},
		extractor: extractor,
		converter: converter,
	}
}

// iomSDGFilters holds the site's internal taxonomy term ids for SDGs 1-17,
// in the order the search form submits them.
var iomSDGFilters = []string{
	"1960", "1961", "1962", "1964", "1963", "1973", "1967", "1965", "1966",
	"1968", "1969", "1976", "1970", "1975", "1974", "1971", "1972",
}

func (s *IOM) searchURL(page int) string {
	params := url.Values{}
	params.Set("keywords", "")
	params.Set("type[0]", "blog_list")
	params.Set("type[1]", "featured_stories")
	params.Set("type[2]", "press_release")
	params.Set("region_country", "")
	for i, id := range iomSDGFilters {
		params.Set(fmt.Sprintf("sdgs[%d]", i), id)
	}
	params.Set("created", "All")
	params.Set("sort_bef_combine", "created_DESC")
	params.Set("page", strconv.Itoa(page))
	return s.info.BaseURL + "/search?" + params.Encode()
}

// ListPage parses one zero-based search result page into cards. The cards
// carry title, type, and year parsed from the listing itself; only labels
// and the article body come from the publication page.
func (s *IOM) ListPage(ctx context.Context, page int) ([]harvest.Card, error) {
	doc, err := s.document(ctx, s.searchURL(page))
	if err != nil {
		return nil, err
	}

	var cards []harvest.Card
	doc.Find("div.article-detail").Each(func(_ int, detail *goquery.Selection) {
		// Stories are not nested inside the detail node properly, so the
		// enclosing parent carries the anchor and the rest of the card.
		card := detail.Parent()
		href, ok := card.Find("a").First().Attr("href")
		if !ok {
			return
		}
		// Stories live on a subdomain and use absolute URLs.
		if !strings.HasPrefix(href, "http") {
			href = resolveURL(s.info.BaseURL, href)
		}
		cards = append(cards, harvest.Card{
			URL: href,
			Meta: &harvest.Metadata{
				Title: strings.TrimSpace(card.Find("h5.title").First().Text()),
				Type:  collapseSpace(card.Find("div.tag").First().Text()),
				Year:  parseYear(card.Find("div.date").First().Text()),
			},
		})
	})
	return cards, nil
}

// Publication parses an article page into metadata and Markdown content.
func (s *IOM) Publication(ctx context.Context, card harvest.Card) (*harvest.Publication, error) {
	body, err := s.fetcher.Fetch(ctx, card.URL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "parse %s: %v", card.URL, err)
	}

	meta := harvest.Metadata{
		Source: card.URL,
		Labels: parseIOMLabels(doc),
	}
	if card.Meta != nil {
		meta.Title = card.Meta.Title
		meta.Type = card.Meta.Type
		meta.Year = card.Meta.Year
	}

	contentHTML := articleHTML(doc)
	if contentHTML == "" {
		result, err := s.extractor.Extract(string(body))
		if err == nil && result != nil {
			contentHTML = result.ContentHTML
			if meta.Title == "" {
				meta.Title = result.Title
			}
		}
	}
	if contentHTML == "" {
		// No recognizable article body; the pipeline counts this as skipped.
		return &harvest.Publication{Metadata: meta}, nil
	}

	markdown, err := s.converter.Convert(contentHTML)
	if err != nil {
		return nil, err
	}

	return &harvest.Publication{Metadata: meta, Content: markdown}, nil
}

// iomLabelPattern matches SDG icon paths such as
// ".../public/sdgs-icon/e_web_10.png?itok=68_FmtiD" and captures the goal.
var iomLabelPattern = regexp.MustCompile(`/public/sdg.*/e_web_(\d{2}).*\.png`)

// parseIOMLabels reads SDG goal numbers from the icon images, scoped to the
// sorted-SDG block when the page has one.
func parseIOMLabels(doc *goquery.Document) []int {
	scope := doc.Selection
	if div := doc.Find("div.field--name-dynamic-block-fieldnode-sdg-sorted"); div.Length() > 0 {
		scope = div
	}

	var labels []int
	scope.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok {
			return
		}
		if m := iomLabelPattern.FindStringSubmatch(src); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				labels = append(labels, n)
			}
		}
	})
	sort.Ints(labels)
	return labels
}

// articleHTML locates the article body in one of the known containers,
// tried in order: blog, news, stories.
func articleHTML(doc *goquery.Document) string {
	if div := doc.Find("div.node--type-blog-list div.field--name-field-contents"); div.Length() > 0 {
		return outerHTML(div.First())
	}
	if div := doc.Find("div.narrow-content div.field--type-text-with-summary"); div.Length() > 0 {
		return outerHTML(div.First())
	}
	if div := doc.Find("div[data-history-node-id]"); div.Length() > 0 {
		return outerHTML(div.First())
	}
	return ""
}

func outerHTML(sel *goquery.Selection) string {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return html
}
