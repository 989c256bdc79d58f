// Package money handles fixed-point monetary amounts.
//
// All amounts are stored as integer minor units (cents) so that summation
// over many contributions never accumulates binary floating-point error.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Cents is a monetary amount in minor units (1/100 of the currency unit).
type Cents int64

// ParseCents converts a decimal string to cents with half-up rounding on the
// third fractional digit. Both dot (12.34) and comma (12,34) separators are
// accepted. Negative values and signs are rejected; zero is allowed so that
// callers can distinguish "no goal" from a bad input.
//
// Examples:
//
//	ParseCents("12.34")  -> 1234
//	ParseCents("12,34")  -> 1234
//	ParseCents("12.344") -> 1234 (rounds down)
//	ParseCents("12.345") -> 1235 (rounds up)
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return Cents(iv*100 + fracCents), nil
}

// ParsePositiveCents is ParseCents restricted to strictly positive amounts.
func ParsePositiveCents(s string) (Cents, error) {
	c, err := ParseCents(s)
	if err != nil {
		return 0, err
	}
	if c <= 0 {
		return 0, ErrInvalidAmount
	}
	return c, nil
}

// String renders the amount as a plain decimal with two fractional digits.
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
