package fetcher

// Fetcher abstracts how pages are retrieved so the pipeline can run
// against a real browser or plain HTTP.
type Fetcher interface {
	// CollectBookLinks paginates the listing from startURL and returns
	// the unique book detail links found, in first-seen order. maxLinks
	// caps the result; 0 means no cap.
	CollectBookLinks(startURL string, maxLinks int) ([]string, error)

	// FetchBookPage returns the rendered HTML of a single detail page.
	FetchBookPage(url string) (string, error)

	// Close releases the underlying session.
	Close() error
}
