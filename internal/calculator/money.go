package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = money.USD

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// Exponent window accepted by ParseAmount. Anything outside it either
// overflows int64 or truncates to nothing, and rescaling such values is
// expensive.
const (
	maxExponent = 18
	minExponent = -64
	maxInputLen = 64
)

// ValidCurrency reports whether code is an ISO 4217 code known to go-money.
func ValidCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}

// fraction returns the number of minor-unit digits for the currency.
func fraction(currency string) int32 {
	if cur := money.GetCurrency(currency); cur != nil {
		return int32(cur.Fraction)
	}
	return 2
}

// MajorUnit is the number of minor units in one major unit (100 for USD).
func MajorUnit(currency string) int64 {
	unit := int64(1)
	for range fraction(currency) {
		unit *= 10
	}
	return unit
}

// ParseAmount converts user input in major units (e.g. "12.50") into minor
// units of the currency. Extra digits beyond the currency's precision are
// truncated. Empty, non-numeric, negative and out-of-range input is rejected.
func ParseAmount(raw, currency string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxInputLen {
		return 0, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return 0, false
	}
	if d.IsZero() {
		return 0, true
	}
	exp := d.Exponent()
	if exp > maxExponent || exp < minExponent {
		return 0, false
	}
	// Integer digits after scaling to minor units; int64 holds at most 19.
	if len(d.Coefficient().String())+int(exp+fraction(currency)) > 19 {
		return 0, false
	}
	d = d.Shift(fraction(currency)).Truncate(0)
	if d.GreaterThan(maxMinor) {
		return 0, false
	}
	return d.IntPart(), true
}

// FormatAmount renders minor units as plain decimal text suitable for a form
// input. Zero renders as the empty string, matching an untouched field.
func FormatAmount(minor int64, currency string) string {
	if minor == 0 {
		return ""
	}
	return decimal.New(minor, -fraction(currency)).String()
}

// Display renders minor units with the currency symbol, e.g. "$7.00".
func Display(minor int64, currency string) string {
	return money.New(minor, currency).Display()
}

// Settlement describes a balance the way the friend list shows it.
func Settlement(name string, balance int64, currency string) string {
	switch {
	case balance < 0:
		return fmt.Sprintf("You owe %s %s", name, Display(-balance, currency))
	case balance > 0:
		return fmt.Sprintf("%s owes you %s", name, Display(balance, currency))
	default:
		return fmt.Sprintf("You and %s are even", name)
	}
}
