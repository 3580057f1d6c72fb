package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"thriftbooks-scraper/models"
)

// WriteCSV writes the records to filename as a UTF-8 comma-separated
// file. The header row is the first record's field sequence; later
// records contribute values for those fields only, with an empty cell
// for fields they lack and any extra fields silently dropped. An empty
// record slice writes nothing and leaves no file behind.
func WriteCSV(records []*models.Record, filename string) error {
	if len(records) == 0 {
		fmt.Println("No data to save.")
		return nil
	}

	if err := ensureDir(filename); err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := records[0].Keys()
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(header))
	for _, record := range records {
		for i, key := range header {
			row[i] = record.Get(key)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	fmt.Printf("Saved %d rows to %s\n", len(records), filename)
	return nil
}

// ensureDir creates the output file's directory when the path has one.
func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	return nil
}
