package application

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
)

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError("price must be a decimal amount")
	}
	if !price.IsPositive() {
		return decimal.Zero, domain.NewValidationError("price must be positive")
	}
	return price.Round(2), nil
}

// parseOptionalTime parses an RFC3339 value, defaulting to now when empty.
func parseOptionalTime(field, s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(fmt.Sprintf("invalid %s format (use RFC3339)", field))
	}
	return t.UTC(), nil
}

func fixedString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}
