package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

// timestampLayout is fixed-width so stored timestamps sort lexically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ParseTime parses a date string in "2006-01-02", RFC3339 or SQLite's
// "2006-01-02 15:04:05" format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// FormatTimestamp formats t for a DATETIME column.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseDecimal reads a TEXT decimal column.
func parseDecimal(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: column %s holds %q", apperrors.ErrDataInconsistency, column, value)
	}
	return d, nil
}
