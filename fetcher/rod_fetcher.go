package fetcher

import (
	"fmt"
	"log"
	"os"
	"time"

	"thriftbooks-scraper/config"
	"thriftbooks-scraper/models"
	"thriftbooks-scraper/parser"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// nextButtonSelector matches the listing pagination control while more
// pages are available. The last page keeps the button but marks it
// disabled.
const nextButtonSelector = "button.Pagination-link.is-right.is-link"

// RodFetcher implements the Fetcher interface using rod (headless
// browser). One browser session serves the whole run; each operation
// opens its own page and closes it when done.
type RodFetcher struct {
	browser *rod.Browser
	cfg     *config.Config
}

// NewRodFetcher launches a browser and connects to it.
func NewRodFetcher(cfg *config.Config) (*RodFetcher, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(true).
		Leakless(false).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("mute-audio").
		Set("window-size", "1920,1080").
		Set("user-agent", cfg.UserAgent)

	// Prefer a system Chrome/Chromium; rod downloads its own build when
	// none of these exist.
	chromePaths := []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &RodFetcher{
		browser: browser,
		cfg:     cfg,
	}, nil
}

// Close closes the browser.
func (rf *RodFetcher) Close() error {
	if rf.browser != nil {
		return rf.browser.Close()
	}
	return nil
}

// newPage creates a page, converting rod's panics into errors.
func (rf *RodFetcher) newPage() (page *rod.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			page = nil
			err = fmt.Errorf("panic while creating page: %v", r)
		}
	}()
	page = rf.browser.MustPage()
	if page == nil {
		return nil, fmt.Errorf("failed to create page")
	}
	return page, nil
}

// CollectBookLinks implements the Fetcher interface. It paginates from
// startURL until the next control disappears or reports disabled, or
// until maxLinks unique links have been collected, whichever comes
// first. A listing page that never renders its cards ends the traversal
// with whatever was collected so far rather than failing the run.
func (rf *RodFetcher) CollectBookLinks(startURL string, maxLinks int) ([]string, error) {
	set := models.NewLinkSet(maxLinks)

	page, err := rf.newPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.Navigate(startURL); err != nil {
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}
	page.WaitLoad()

	for {
		links, err := rf.listingLinks(page, startURL)
		if err != nil {
			log.Printf("Error scraping links: %v\n", err)
			break
		}

		full := false
		for _, link := range links {
			set.Add(link)
			if set.Full() {
				full = true
				break
			}
		}
		if full {
			log.Printf("Reached max_links=%d. Stopping.\n", maxLinks)
			break
		}
		log.Printf("Collected %d links on this page. Total so far: %d\n", len(links), set.Len())

		if !rf.nextPage(page) {
			break
		}
	}

	return set.Links(), nil
}

// listingLinks waits for the current listing page to render its book
// cards, then snapshots the HTML and extracts the card link targets.
func (rf *RodFetcher) listingLinks(page *rod.Page, baseURL string) ([]string, error) {
	if _, err := page.Timeout(rf.cfg.NavTimeout).Element(parser.BookCardSelector); err != nil {
		return nil, fmt.Errorf("no book cards appeared: %w", err)
	}
	time.Sleep(rf.cfg.SettleDelay) // let the page settle

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to get HTML: %w", err)
	}

	return parser.BookLinks(html, baseURL)
}

// nextPage activates the pagination control and waits for the next
// listing page to render. It returns false once traversal is done: the
// control is missing, disabled, or cannot be clicked.
func (rf *RodFetcher) nextPage(page *rod.Page) bool {
	next, err := page.Timeout(rf.cfg.NextTimeout).Element(nextButtonSelector)
	if err != nil {
		log.Println("No next button found, stopping.")
		return false
	}

	if nextDisabled(next) {
		log.Println("Reached last page.")
		return false
	}

	if visible, err := next.Visible(); err != nil || !visible {
		log.Println("No next button found, stopping.")
		return false
	}
	if err := next.ScrollIntoView(); err != nil {
		log.Println("No next button found, stopping.")
		return false
	}
	if err := next.Click("left", 1); err != nil {
		log.Println("No next button found, stopping.")
		return false
	}

	page.WaitLoad()
	time.Sleep(rf.cfg.PaginationDelay) // allow the new page to load

	if err := page.Timeout(rf.cfg.StabilizeTimeout).WaitStable(500 * time.Millisecond); err != nil {
		log.Printf("Warning: Listing page did not stabilize within timeout, continuing anyway: %v\n", err)
	}

	return true
}

// nextDisabled reports whether the pagination control is marked disabled
// through the disabled attribute or aria-disabled.
func nextDisabled(el *rod.Element) bool {
	if v, _ := el.Attribute("disabled"); v != nil {
		return true
	}
	if v, _ := el.Attribute("aria-disabled"); v != nil && *v == "true" {
		return true
	}
	return false
}

// FetchBookPage implements the Fetcher interface. It opens the detail
// page on a fresh tab and returns the rendered HTML once the title
// element is present.
func (rf *RodFetcher) FetchBookPage(url string) (string, error) {
	page, err := rf.newPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate: %w", err)
	}
	page.WaitLoad()

	if _, err := page.Timeout(rf.cfg.DetailTimeout).Element(parser.BookTitleSelector); err != nil {
		return "", fmt.Errorf("title element did not appear: %w", err)
	}
	time.Sleep(rf.cfg.SettleDelay) // give JavaScript time to render

	if err := page.Timeout(rf.cfg.StabilizeTimeout).WaitStable(500 * time.Millisecond); err != nil {
		log.Printf("Warning: Detail page did not stabilize within timeout, continuing anyway: %v\n", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}

	return html, nil
}
