// Package normalize maps registry wire records into display-ready view-models.
//
// Every optional server field resolves to a fixed placeholder so the
// resulting view-models never contain gaps. Values outside a closed
// vocabulary or numeric range fail the whole record.
package normalize

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Placeholder is the display text for an absent optional field.
const Placeholder = "N/A"

// UnknownMarketValue is shown when a parcel has no valuation block.
const UnknownMarketValue = "$—"

// Currency renders an amount as "$" followed by comma-grouped digits.
// Fractional digits are kept only when present.
func Currency(amount float64) string {
	return "$" + humanize.Commaf(amount)
}

// OptionalCurrency renders amount or the placeholder when it is nil.
func OptionalCurrency(amount *float64) string {
	if amount == nil {
		return Placeholder
	}
	return Currency(*amount)
}

// TruncateDate keeps the date component of an ISO-8601 date-time.
// No timezone conversion is applied.
func TruncateDate(value string) string {
	date, _, _ := strings.Cut(value, "T")
	return date
}

// OptionalDate truncates value or returns the placeholder when it is nil or blank.
func OptionalDate(value *string) string {
	text := Text(value)
	if text == Placeholder {
		return Placeholder
	}
	return TruncateDate(text)
}

// Text returns value, or the placeholder when it is nil or blank.
func Text(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return Placeholder
	}
	return *value
}

// TextOr returns value, or the placeholder when it is blank.
func TextOr(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}

// Int dereferences a nullable count.
func Int(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

// Float dereferences a nullable number.
func Float(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

// Area renders a parcel area from its display text, falling back to the
// square-footage figure.
func Area(display *string, sqft *float64) string {
	if text := Text(display); text != Placeholder {
		return text
	}
	if sqft == nil {
		return Placeholder
	}
	return humanize.Commaf(*sqft) + " sq ft"
}

// DocumentType renders a registry document type for display,
// e.g. "title_deed" becomes "TITLE DEED".
func DocumentType(raw string) string {
	return TextOr(strings.ToUpper(strings.ReplaceAll(raw, "_", " ")))
}

// FileSize renders a byte count in megabytes with one decimal.
func FileSize(bytes *int64) string {
	if bytes == nil || *bytes <= 0 {
		return Placeholder
	}
	return fmt.Sprintf("%.1f MB", float64(*bytes)/1024/1024)
}
