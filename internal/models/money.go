package models

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is prepended to every formatted amount.
const CurrencyPrefix = "RM"

// Money is an amount in sen, the minor unit of the ringgit.
type Money int64

var (
	maxMoney = decimal.NewFromInt(math.MaxInt64)

	nonPriceChars = regexp.MustCompile(`[^\d.]`)
	leadingNumber = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// ParsePrice converts a display price such as "RM 1,200.50" into Money.
// Every character that is not a digit or '.' is dropped, then the longest
// leading decimal number is read. Unparseable input, and amounts too large
// to hold in sen, yield zero.
func ParsePrice(display string) Money {
	cleaned := nonPriceChars.ReplaceAllString(display, "")
	num := strings.TrimSuffix(leadingNumber.FindString(cleaned), ".")
	if num == "" {
		return 0
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return 0
	}
	sen := d.Shift(2).Round(0)
	if sen.GreaterThan(maxMoney) {
		return 0
	}
	return Money(sen.IntPart())
}

// Times returns m multiplied by a quantity.
func (m Money) Times(quantity int) Money {
	return m * Money(quantity)
}

// Decimal returns the amount in ringgit.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount for display, e.g. "RM 55.00".
func (m Money) String() string {
	return CurrencyPrefix + " " + m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a ringgit number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}
