package calculator

import (
	"math"

	"github.com/mmynk/friendsplit/internal/models"
)

// Totals summarizes the whole friend list.
type Totals struct {
	Owed  int64 // Sum of positive balances: what friends owe the user
	Owing int64 // Sum of negative balances as a positive amount: what the user owes
}

// Net is what the user would end up with if everyone settled today.
func (t Totals) Net() int64 {
	return t.Owed - t.Owing
}

// AddBalance returns balance+value. ok is false when the result would leave
// the range of a balance: int64 without MinInt64, so every balance can be
// negated for display.
func AddBalance(balance, value int64) (int64, bool) {
	if (value > 0 && balance > math.MaxInt64-value) ||
		(value < 0 && balance < -math.MaxInt64-value) {
		return balance, false
	}
	return balance + value, true
}

// saturatingAdd adds two non-negative amounts, capping at MaxInt64.
func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// CalculateTotals aggregates the balances of every friend. Sums that do not
// fit an int64 are capped at math.MaxInt64.
func CalculateTotals(friends []models.Friend) Totals {
	var t Totals
	for _, f := range friends {
		switch f.Status() {
		case models.StatusOwed:
			t.Owed = saturatingAdd(t.Owed, f.Balance)
		case models.StatusOwe:
			t.Owing = saturatingAdd(t.Owing, -f.Balance)
		}
	}
	return t
}
