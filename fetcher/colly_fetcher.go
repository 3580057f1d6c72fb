package fetcher

import (
	"fmt"
	"log"
	"net/http"

	"thriftbooks-scraper/config"
	"thriftbooks-scraper/models"
	"thriftbooks-scraper/parser"

	"github.com/gocolly/colly/v2"
)

// nextLinkSelector finds the pagination link target in server-rendered
// listing markup.
const nextLinkSelector = "a.Pagination-link.is-right[href]"

// CollyFetcher implements the Fetcher interface over plain HTTP. It
// only sees server-rendered markup, so listings that render through
// JavaScript yield a single page at best.
type CollyFetcher struct {
	cfg *config.Config

	// transport overrides the collector's HTTP transport in tests
	transport http.RoundTripper
}

// NewCollyFetcher creates a new CollyFetcher instance.
func NewCollyFetcher(cfg *config.Config) *CollyFetcher {
	return &CollyFetcher{cfg: cfg}
}

// newCollector builds a collector for a single operation so callbacks
// never leak between calls.
func (cf *CollyFetcher) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(cf.cfg.UserAgent),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(cf.cfg.RequestTimeout)
	if cf.transport != nil {
		c.WithTransport(cf.transport)
	}

	c.OnError(func(r *colly.Response, err error) {
		log.Printf("Error fetching %s: %v\n", r.Request.URL, err)
	})

	return c
}

// CollectBookLinks implements the Fetcher interface. Each fetched page
// contributes its card links, and pagination follows the next link
// until it disappears or maxLinks unique links have been collected.
// The collector's own revisit protection stops pagination loops.
func (cf *CollyFetcher) CollectBookLinks(startURL string, maxLinks int) ([]string, error) {
	set := models.NewLinkSet(maxLinks)
	c := cf.newCollector()

	c.OnResponse(func(r *colly.Response) {
		links, err := parser.BookLinks(string(r.Body), r.Request.URL.String())
		if err != nil {
			log.Printf("Error scraping links: %v\n", err)
			return
		}

		for _, link := range links {
			set.Add(link)
			if set.Full() {
				log.Printf("Reached max_links=%d. Stopping.\n", maxLinks)
				return
			}
		}
		log.Printf("Collected %d links on this page. Total so far: %d\n", len(links), set.Len())
	})

	c.OnHTML(nextLinkSelector, func(e *colly.HTMLElement) {
		if set.Full() {
			return
		}
		next := e.Request.AbsoluteURL(e.Attr("href"))
		if next == "" {
			return
		}
		// Visit errors here are already-visited or filtered targets
		e.Request.Visit(next)
	})

	if err := c.Visit(startURL); err != nil {
		return nil, fmt.Errorf("failed to visit listing page: %w", err)
	}
	c.Wait()

	if set.Len() == 0 {
		log.Println("Warning: No book links collected. ThriftBooks may be rendering listings with JavaScript.")
		log.Println("Consider running in browser mode instead.")
	}

	return set.Links(), nil
}

// FetchBookPage implements the Fetcher interface.
func (cf *CollyFetcher) FetchBookPage(url string) (string, error) {
	c := cf.newCollector()

	var html string
	c.OnResponse(func(r *colly.Response) {
		html = string(r.Body)
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("failed to visit %s: %w", url, err)
	}
	c.Wait()

	if html == "" {
		return "", fmt.Errorf("no content fetched from %s", url)
	}

	return html, nil
}

// Close implements the Fetcher interface. Plain HTTP holds no session
// resources.
func (cf *CollyFetcher) Close() error {
	return nil
}
