package models

// Record holds the scraped fields of a single book as ordered key/value
// pairs. Different books carry different format and condition fields, so
// the field set varies per record.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord creates an empty Record
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores a field value. A new key is appended after the existing
// ones; an existing key keeps its position and gets the new value.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key, or "" if the record has no such field.
func (r *Record) Get(key string) string {
	return r.values[key]
}

// Has reports whether the record carries the field.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	return r.keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// LinkSet accumulates book detail URLs, dropping duplicates while
// keeping the order links were first seen in. Duplicate detection is
// exact string comparison, no URL normalization.
type LinkSet struct {
	limit int
	seen  map[string]bool
	links []string
}

// NewLinkSet creates a LinkSet that refuses new links once limit is
// reached. A limit of 0 means no cap.
func NewLinkSet(limit int) *LinkSet {
	return &LinkSet{
		limit: limit,
		seen:  make(map[string]bool),
	}
}

// Add records a link. It returns false for empty strings, links already
// in the set, and anything offered after the set is full.
func (ls *LinkSet) Add(link string) bool {
	if link == "" || ls.Full() || ls.seen[link] {
		return false
	}
	ls.seen[link] = true
	ls.links = append(ls.links, link)
	return true
}

// Full reports whether the set has reached its limit.
func (ls *LinkSet) Full() bool {
	return ls.limit > 0 && len(ls.links) >= ls.limit
}

// Len returns the number of collected links.
func (ls *LinkSet) Len() int {
	return len(ls.links)
}

// Links returns the collected links in first-seen order.
func (ls *LinkSet) Links() []string {
	return ls.links
}
