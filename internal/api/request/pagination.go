package request

import (
	"fmt"
	"strconv"
	"strings"
)

// Pagination bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page is a validated offset/limit window.
type Page struct {
	Offset int
	Limit  int
}

// ParsePagination extracts and validates offset and limit query parameters.
// skip is accepted as an alias of offset. All parameters are optional.
//
// Validation rules:
//   - offset: non-negative integer (defaults to 0)
//   - limit: between 1 and MaxLimit (defaults to DefaultLimit)
func ParsePagination(offsetParam, skipParam, limitParam string) (Page, error) {
	page := Page{Limit: DefaultLimit}

	if strings.TrimSpace(offsetParam) == "" {
		offsetParam = skipParam
	}
	if offsetParam = strings.TrimSpace(offsetParam); offsetParam != "" {
		offset, err := strconv.Atoi(offsetParam)
		if err != nil || offset < 0 {
			return Page{}, fmt.Errorf("invalid offset: %s", offsetParam)
		}
		page.Offset = offset
	}

	if limitParam = strings.TrimSpace(limitParam); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 || limit > MaxLimit {
			return Page{}, fmt.Errorf("invalid limit: %s (must be between 1 and %d)", limitParam, MaxLimit)
		}
		page.Limit = limit
	}

	return page, nil
}
