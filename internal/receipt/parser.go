package receipt

import (
	"strconv"
	"strings"

	"github.com/paymint/paymint-bot/internal/models"
)

// Parsed is the outcome of reading a /receipt body.
type Parsed struct {
	Items        []models.SaleItem
	Total        float64
	CustomerName string
	Note         string
}

// currency symbols and separators stripped before parsing a price
var priceReplacer = strings.NewReplacer("₦", "", "$", "", "€", "", "£", "", ",", "", " ", "")

// ParseBody reads an itemized receipt body, one line per item in the form
// "name - price". "customer:" and "note:" lines (case-insensitive) may
// appear anywhere. Lines that are neither are silently dropped.
func ParseBody(body string) Parsed {
	var parsed Parsed

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "customer:"):
			parsed.CustomerName = strings.TrimSpace(line[len("customer:"):])
			continue
		case strings.HasPrefix(lower, "note:"):
			parsed.Note = strings.TrimSpace(line[len("note:"):])
			continue
		}

		// An item line splits at the last "-" so item names may contain
		// dashes themselves.
		idx := strings.LastIndex(line, "-")
		if idx < 0 {
			continue
		}

		name := strings.TrimSpace(line[:idx])
		priceStr := priceReplacer.Replace(strings.TrimSpace(line[idx+1:]))

		// A negative price like "Shirt - -200" splits at its own minus
		// sign, leaving the real separator dangling on the name.
		if name == "" || strings.HasSuffix(name, "-") {
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			continue
		}

		parsed.Items = append(parsed.Items, models.SaleItem{Name: name, Price: price})
		parsed.Total += price
	}

	return parsed
}
