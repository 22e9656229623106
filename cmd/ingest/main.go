// Command ingest converts a raw watch listing CSV into the JSON shape the
// catalog expects. Rows that cannot be parsed are reported and skipped, the
// rest are printed to stdout as a JSON array.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// watchRecord is the output shape for one converted row.
type watchRecord struct {
	Name            string `json:"name"`
	Brand           string `json:"brand"`
	ReferenceNumber string `json:"referenceNumber"`
	RetailPrice     int64  `json:"retailPrice"`
	ReleaseDate     string `json:"releaseDate,omitempty"`
	CountryCode     string `json:"countryCode,omitempty"`
	CurrencyCode    string `json:"currencyCode,omitempty"`
}

// countryCodeRe matches a trailing two-letter country code in the shipping
// details column, e.g. "Ships from dealer US".
var countryCodeRe = regexp.MustCompile(`\s([A-Z]{2})$`)

var priceDigitsRe = regexp.MustCompile(`[^0-9.]`)

func extractCountryCode(shippingDetails string) string {
	if m := countryCodeRe.FindStringSubmatch(shippingDetails); m != nil {
		return m[1]
	}
	return ""
}

func extractCurrency(price string) string {
	switch {
	case strings.Contains(price, "$"):
		return "USD"
	case strings.Contains(price, "€"):
		return "EUR"
	case strings.Contains(price, "£"):
		return "GBP"
	}
	return ""
}

func extractPrice(price string) int64 {
	cleaned := priceDigitsRe.ReplaceAllString(price, "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int64(n)
}

// formatYear turns a "2004" or "2004 (approx)" year-of-production value into
// a January 1st release date.
func formatYear(year string) string {
	year = strings.TrimSpace(year)
	if year == "" {
		return ""
	}
	return strings.Fields(year)[0] + "-01-01"
}

func convertRow(header map[string]int, row []string) (watchRecord, error) {
	get := func(col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := watchRecord{
		Name:            get("name"),
		Brand:           get("brand"),
		ReferenceNumber: get("ref"),
		RetailPrice:     extractPrice(get("price")),
		ReleaseDate:     formatYear(get("yop")),
		CountryCode:     extractCountryCode(get("shipping")),
		CurrencyCode:    extractCurrency(get("price")),
	}
	if rec.Name == "" || rec.ReferenceNumber == "" {
		return rec, fmt.Errorf("row missing name or ref")
	}
	return rec, nil
}

func main() {
	filePath := flag.String("file", "", "path to the raw CSV file")
	workers := flag.Int("workers", 4, "number of conversion workers")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *filePath == "" {
		log.Error("Usage: ingest -file <path-to-csv>")
		os.Exit(1)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Error("File not found", slog.String("path", *filePath), slog.Any("error", err))
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		log.Error("Failed to read CSV header", slog.Any("error", err))
		os.Exit(1)
	}
	header := make(map[string]int, len(headerRow))
	for i, col := range headerRow {
		header[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var (
		mu      sync.Mutex
		records []watchRecord
	)

	g := new(errgroup.Group)
	g.SetLimit(*workers)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("Skipping unreadable CSV row", slog.Any("error", err))
			continue
		}

		g.Go(func() error {
			rec, err := convertRow(header, row)
			if err != nil {
				log.Warn("Skipping row", slog.Any("error", err))
				return nil
			}
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("Conversion failed", slog.Any("error", err))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		log.Error("Failed to encode output", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("Conversion complete", slog.Int("rows", len(records)))
}
