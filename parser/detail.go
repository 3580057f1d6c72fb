package parser

import (
	"fmt"
	"strings"

	"thriftbooks-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// BookTitleSelector matches the title heading on a book detail page. The
// fetcher waits on it before snapshotting the page.
const BookTitleSelector = ".WorkMeta-title.Alternative.Alternative-title"

// Detail page selectors
const (
	titleFallbackSelector = "h1.WorkMeta-title"
	ratingSelector        = "meta[itemprop='ratingValue']"
	formatButtonSelector  = ".NewButton.WorkSelector-button"
)

// knownFormats are the format and condition labels a purchase selector
// button can carry. Longer labels come first so that "Like New" is never
// read as "New" and "Very Good" never as "Good".
var knownFormats = []string{
	"Library Binding",
	"Like New",
	"Very Good",
	"Hardcover",
	"Paperback",
	"Acceptable",
	"Good",
	"New",
}

// ParseBookPage extracts a book record from a detail page. The returned
// record carries title, rating and url first, then one field per format
// button found on the page, in page order. pageURL is recorded verbatim
// as the url field.
func ParseBookPage(htmlContent, pageURL string) (*models.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find(BookTitleSelector).First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find(titleFallbackSelector).First().Text())
	}
	if title == "" {
		return nil, fmt.Errorf("no title found on page %s", pageURL)
	}

	record := models.NewRecord()
	record.Set("title", title)

	rating := strings.TrimSpace(doc.Find(ratingSelector).First().AttrOr("content", ""))
	if rating == "" {
		rating = "N/A"
	}
	record.Set("rating", rating)
	record.Set("url", pageURL)

	doc.Find(formatButtonSelector).Each(func(i int, s *goquery.Selection) {
		label, price := splitFormatButton(s.Text())
		if label == "" {
			return
		}
		record.Set(label, price)
	})

	return record, nil
}

// splitFormatButton matches a selector button's text against the known
// format labels and returns the label plus the remaining text as the
// price. Buttons with no recognized label return an empty label; a
// matched label with no price text left over yields "N/A".
func splitFormatButton(text string) (label, price string) {
	text = strings.TrimSpace(text)
	for _, name := range knownFormats {
		if strings.Contains(text, name) {
			price = strings.TrimSpace(strings.Replace(text, name, "", 1))
			if price == "" {
				price = "N/A"
			}
			return name, price
		}
	}
	return "", ""
}
