package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prices travel through the API as 2-decimal strings ("25.00") but are
// stored and multiplied as integer cents so that multi-seat totals never
// pick up binary floating-point drift.

// ErrInvalidPrice is returned when a price string cannot be parsed into cents.
var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice converts a decimal price string like "19.99" into cents.
// At most two fraction digits are accepted and the value must be positive.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, frac, ok := strings.Cut(s, ".")
	if !ok {
		frac = "0"
	}
	if whole == "" || len(frac) == 0 || len(frac) > 2 {
		return 0, ErrInvalidPrice
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, ErrInvalidPrice
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || f < 0 {
		return 0, ErrInvalidPrice
	}
	if len(frac) == 1 {
		f *= 10
	}
	cents := w*100 + f
	if cents <= 0 {
		return 0, ErrInvalidPrice
	}
	return cents, nil
}

// FormatPrice renders cents as a 2-decimal string, e.g. 7500 -> "75.00".
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
