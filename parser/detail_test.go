package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseBookPage(t *testing.T) {
	html := `<html><body>
		<h1 class="WorkMeta-title Alternative Alternative-title">The Housemaid</h1>
		<meta itemprop="ratingValue" content="4.36">
		<button class="NewButton WorkSelector-button">Paperback $7.59</button>
		<button class="NewButton WorkSelector-button">Hardcover $25.79</button>
		<button class="NewButton WorkSelector-button">Like New $10.99</button>
	</body></html>`
	pageURL := "https://www.thriftbooks.com/w/the-housemaid/28912652/"

	record, err := ParseBookPage(html, pageURL)
	if err != nil {
		t.Fatalf("ParseBookPage() error = %v", err)
	}

	wantKeys := []string{"title", "rating", "url", "Paperback", "Hardcover", "Like New"}
	if !reflect.DeepEqual(record.Keys(), wantKeys) {
		t.Errorf("Keys() = %v, want %v", record.Keys(), wantKeys)
	}

	wantValues := map[string]string{
		"title":     "The Housemaid",
		"rating":    "4.36",
		"url":       pageURL,
		"Paperback": "$7.59",
		"Hardcover": "$25.79",
		"Like New":  "$10.99",
	}
	for key, want := range wantValues {
		if got := record.Get(key); got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}

	// A "Like New" button must not also populate "New"
	if record.Has("New") {
		t.Errorf("record has a New field (%q), want none", record.Get("New"))
	}
}

func TestParseBookPageNoTitle(t *testing.T) {
	html := `<html><body><meta itemprop="ratingValue" content="4.0"></body></html>`

	if _, err := ParseBookPage(html, "https://www.thriftbooks.com/w/missing/1/"); err == nil {
		t.Fatal("ParseBookPage() = nil error for a page without a title, want error")
	}
}

func TestParseBookPageFallbackTitle(t *testing.T) {
	html := `<html><body><h1 class="WorkMeta-title">It Ends with Us</h1></body></html>`

	record, err := ParseBookPage(html, "https://www.thriftbooks.com/w/it-ends-with-us/1/")
	if err != nil {
		t.Fatalf("ParseBookPage() error = %v", err)
	}
	if got := record.Get("title"); got != "It Ends with Us" {
		t.Errorf("Get(title) = %q, want %q", got, "It Ends with Us")
	}
}

func TestParseBookPageNoRating(t *testing.T) {
	html := `<html><body>
		<h1 class="WorkMeta-title Alternative Alternative-title">Obscure Book</h1>
	</body></html>`

	record, err := ParseBookPage(html, "https://www.thriftbooks.com/w/obscure/1/")
	if err != nil {
		t.Fatalf("ParseBookPage() error = %v", err)
	}
	if got := record.Get("rating"); got != "N/A" {
		t.Errorf("Get(rating) = %q, want %q", got, "N/A")
	}
}

func TestParseBookPageTrimsTitle(t *testing.T) {
	html := `<html><body>
		<h1 class="WorkMeta-title Alternative Alternative-title">
			Dune
		</h1>
	</body></html>`

	record, err := ParseBookPage(html, "https://www.thriftbooks.com/w/dune/1/")
	if err != nil {
		t.Fatalf("ParseBookPage() error = %v", err)
	}
	if got := record.Get("title"); got != "Dune" {
		t.Errorf("Get(title) = %q, want %q", got, "Dune")
	}
}

func TestParseBookPageIgnoresUnknownButtons(t *testing.T) {
	html := `<html><body>
		<h1 class="WorkMeta-title Alternative Alternative-title">Dune</h1>
		<button class="NewButton WorkSelector-button">eBook $2.99</button>
		<button class="NewButton WorkSelector-button">Paperback $7.59</button>
	</body></html>`

	record, err := ParseBookPage(html, "https://www.thriftbooks.com/w/dune/1/")
	if err != nil {
		t.Fatalf("ParseBookPage() error = %v", err)
	}
	wantKeys := []string{"title", "rating", "url", "Paperback"}
	if !reflect.DeepEqual(record.Keys(), wantKeys) {
		t.Errorf("Keys() = %v, want %v", record.Keys(), wantKeys)
	}
}

func TestSplitFormatButton(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel string
		wantPrice string
	}{
		{"paperback", "Paperback $7.59", "Paperback", "$7.59"},
		{"hardcover", "Hardcover $25.79", "Hardcover", "$25.79"},
		{"library binding", "Library Binding $19.99", "Library Binding", "$19.99"},
		{"like new beats new", "Like New $10.99", "Like New", "$10.99"},
		{"very good beats good", "Very Good $5.99", "Very Good", "$5.99"},
		{"plain good", "Good $4.49", "Good", "$4.49"},
		{"plain new", "New $21.99", "New", "$21.99"},
		{"acceptable", "Acceptable $3.99", "Acceptable", "$3.99"},
		{"price range", "Paperback $7.59 - $9.99", "Paperback", "$7.59 - $9.99"},
		{"multiline text", "Paperback\n$7.59", "Paperback", "$7.59"},
		{"label only", "Hardcover", "Hardcover", "N/A"},
		{"whitespace only price", "Hardcover   ", "Hardcover", "N/A"},
		{"unknown label", "eBook $2.99", "", ""},
		{"empty text", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, price := splitFormatButton(tt.text)
			if label != tt.wantLabel || price != tt.wantPrice {
				t.Errorf("splitFormatButton(%q) = (%q, %q), want (%q, %q)",
					tt.text, label, price, tt.wantLabel, tt.wantPrice)
			}
		})
	}
}

func TestKnownFormatsOrdering(t *testing.T) {
	// Every label that contains another label must come first, or the
	// shorter label would win the substring match.
	for i, outer := range knownFormats {
		for j, inner := range knownFormats {
			if i == j {
				continue
			}
			if strings.Contains(outer, inner) && j < i {
				t.Errorf("knownFormats: %q must come before %q", outer, inner)
			}
		}
	}
}
