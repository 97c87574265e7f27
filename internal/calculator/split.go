package calculator

import "github.com/mmynk/friendsplit/internal/models"

// FriendExpense is the friend's share of a bill: whatever the user did not
// cover themself.
func FriendExpense(bill, paidByUser int64) int64 {
	return bill - paidByUser
}

// SplitValue computes the balance adjustment for the selected friend after a
// bill is split, seen from the friend's side of the ledger.
//
// If the user paid the bill, the friend now owes their expense (positive).
// If the friend paid, the user now owes the share they consumed (negative).
func SplitValue(bill, paidByUser int64, payer models.Payer) int64 {
	if payer == models.PayerUser {
		return FriendExpense(bill, paidByUser)
	}
	return -paidByUser
}

// ClampPaid returns the user's share after an edit. A share larger than the
// bill is rejected and the previous value kept; negatives coerce to zero.
func ClampPaid(bill, previous, next int64) int64 {
	if next < 0 {
		next = 0
	}
	if next > bill {
		return previous
	}
	return next
}
