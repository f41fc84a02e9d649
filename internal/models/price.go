package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Price is a monetary amount in integer cents.
//
// It marshals to a JSON decimal string ("1.99") and accepts either a string
// or a bare number when unmarshaling.
type Price int64

// NewPrice builds a Price from whole dollars and cents.
func NewPrice(dollars, cents int64) Price {
	return Price(dollars*100 + cents)
}

// ParsePrice parses a decimal string such as "1.99", "2", or "0.5" into a
// Price. Negative amounts and more than two fraction digits are rejected.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("negative price: %s", s)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}

	var cents int64
	switch len(frac) {
	case 0:
	case 1:
		if cents, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", s, err)
		}
		cents *= 10
	case 2:
		if cents, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", s, err)
		}
	default:
		return 0, fmt.Errorf("invalid price %q: more than two fraction digits", s)
	}

	return Price(dollars*100 + cents), nil
}

// Cents returns the amount in cents.
func (p Price) Cents() int64 {
	return int64(p)
}

// String formats the price as a decimal string with two fraction digits.
func (p Price) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON implements json.Marshaler, emitting a quoted decimal string.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting "1.99" or 1.99.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
