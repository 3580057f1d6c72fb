package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BookCardSelector matches one book card on a listing page. The fetcher
// waits on it before snapshotting the page.
const BookCardSelector = ".SearchResultGridItem"

// BookLinks extracts the detail page URL of every book card in a listing
// page, in document order. Relative hrefs are resolved against pageURL.
// Duplicates are kept; deduplication across pages is the caller's job.
func BookLinks(htmlContent, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL: %w", err)
	}

	var links []string
	doc.Find(BookCardSelector).Each(func(i int, s *goquery.Selection) {
		// The card is normally an anchor itself; fall back to a nested one
		href := s.AttrOr("href", "")
		if href == "" {
			href = s.Find("a").First().AttrOr("href", "")
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		links = append(links, absoluteURL(base, href))
	})

	return links, nil
}

// absoluteURL resolves href against the page it came from. Unparseable
// hrefs are passed through untouched.
func absoluteURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
