package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ValidateTicker checks that a ticker is non-empty, at most MaxTickerLength long and
// made of letters, digits and the symbols Yahoo uses (". - ^ =").
func ValidateTicker(ticker string) error {
	if strings.TrimSpace(ticker) == "" {
		return apperrors.ErrInvalidTicker
	}
	if len(ticker) > MaxTickerLength {
		return fmt.Errorf("%w: longer than %d characters", apperrors.ErrInvalidTicker, MaxTickerLength)
	}
	for _, r := range ticker {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case strings.ContainsRune(".-^=", r):
		default:
			return fmt.Errorf("%w: unexpected character %q", apperrors.ErrInvalidTicker, r)
		}
	}
	return nil
}
