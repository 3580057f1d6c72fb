package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"thriftbooks-scraper/config"
	"thriftbooks-scraper/exporter"
	"thriftbooks-scraper/fetcher"
	"thriftbooks-scraper/models"
	"thriftbooks-scraper/parser"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	startURL := flag.String("url", config.DefaultStartURL, "Listing page URL to start from")
	mode := flag.String("mode", config.ModeBrowser, "Fetch mode: browser (headless Chrome) or static (plain HTTP)")
	headless := flag.Bool("headless", true, "Run the browser without a visible window")
	maxLinks := flag.Int("max-links", 0, "Maximum number of book links to collect (0 = no limit)")
	maxBooks := flag.Int("max-books", 0, "Maximum number of books to scrape (0 = no limit)")
	output := flag.String("output", "booktok_bestsellers.csv", "Output CSV file path")
	navTimeout := flag.Duration("nav-timeout", 20*time.Second, "How long to wait for book cards on a listing page")
	nextTimeout := flag.Duration("next-timeout", 10*time.Second, "How long to wait for the next page button")
	detailTimeout := flag.Duration("detail-timeout", 15*time.Second, "How long to wait for the title on a detail page")
	settleDelay := flag.Duration("settle-delay", 2*time.Second, "Pause after a page renders before reading it")
	paginationDelay := flag.Duration("pagination-delay", 3*time.Second, "Pause after clicking to the next listing page")
	flag.Parse()

	cfg := loadConfig(*configPath)

	// Flags set explicitly on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.StartURL = *startURL
		case "mode":
			cfg.Mode = *mode
		case "headless":
			cfg.Headless = *headless
		case "max-links":
			cfg.MaxLinks = *maxLinks
		case "max-books":
			cfg.MaxBooks = *maxBooks
		case "output":
			cfg.OutputFile = *output
		case "nav-timeout":
			cfg.NavTimeout = *navTimeout
		case "next-timeout":
			cfg.NextTimeout = *nextTimeout
		case "detail-timeout":
			cfg.DetailTimeout = *detailTimeout
		case "settle-delay":
			cfg.SettleDelay = *settleDelay
		case "pagination-delay":
			cfg.PaginationDelay = *paginationDelay
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v\n", err)
	}

	f, err := newFetcher(cfg)
	if err != nil {
		log.Fatalf("Failed to create fetcher: %v\n", err)
	}

	if err := run(cfg, f); err != nil {
		log.Fatalf("Scraping failed: %v\n", err)
	}
}

// loadConfig reads the config file when it exists, falling back to
// defaults otherwise.
func loadConfig(configPath string) *config.Config {
	if _, err := os.Stat(configPath); err != nil {
		log.Println("Config file not found. Using default configuration.")
		return config.DefaultConfig()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config file: %v. Using defaults.\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// newFetcher picks the fetch implementation for the configured mode.
func newFetcher(cfg *config.Config) (fetcher.Fetcher, error) {
	if cfg.Mode == config.ModeStatic {
		return fetcher.NewCollyFetcher(cfg), nil
	}
	return fetcher.NewRodFetcher(cfg)
}

// run executes the collect, scrape and export pipeline. The fetcher
// session is released on every exit path, including error returns.
func run(cfg *config.Config, f fetcher.Fetcher) error {
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: Failed to close browser: %v\n", err)
		}
	}()

	links, err := f.CollectBookLinks(cfg.StartURL, cfg.MaxLinks)
	if err != nil {
		return fmt.Errorf("failed to collect book links: %w", err)
	}
	fmt.Printf("Collected %d book links\n", len(links))

	records := scrapeBookDetails(f, links, cfg.MaxBooks)

	if err := exporter.WriteCSV(records, cfg.OutputFile); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return nil
}

// scrapeBookDetails visits each collected link in order and parses it
// into a record. maxBooks truncates the link list up front; 0 means
// scrape everything. A link that fails to fetch or parse is logged and
// skipped, never aborting the run.
func scrapeBookDetails(f fetcher.Fetcher, links []string, maxBooks int) []*models.Record {
	if maxBooks > 0 && len(links) > maxBooks {
		links = links[:maxBooks]
	}

	var records []*models.Record
	for i, link := range links {
		html, err := f.FetchBookPage(link)
		if err != nil {
			log.Printf("Failed on link %s: %v\n", link, err)
			continue
		}

		record, err := parser.ParseBookPage(html, link)
		if err != nil {
			log.Printf("Failed on link %s: %v\n", link, err)
			continue
		}

		records = append(records, record)
		log.Printf("[%d/%d] Scraped: %s\n", i+1, len(links), record.Get("title"))
	}

	return records
}
