package models

// Friend represents one entry in the user's friend list.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format).
	// It never changes after the friend is created.
	ID string `json:"id"`

	// Name is the display name of the friend (e.g., "Clark").
	Name string `json:"name"`

	// Image is the avatar URL shown next to the friend.
	Image string `json:"image"`

	// Balance is the running balance with this friend, in minor units.
	// Negative = you owe this friend, positive = this friend owes you,
	// zero = settled.
	Balance int64 `json:"balance"`
}

// BalanceStatus describes which way a balance points.
type BalanceStatus string

const (
	// StatusOwe means the user owes the friend.
	StatusOwe BalanceStatus = "owe"
	// StatusOwed means the friend owes the user.
	StatusOwed BalanceStatus = "owed"
	// StatusEven means nobody owes anything.
	StatusEven BalanceStatus = "even"
)

// Status returns the settlement direction of the friend's balance.
func (f Friend) Status() BalanceStatus {
	switch {
	case f.Balance < 0:
		return StatusOwe
	case f.Balance > 0:
		return StatusOwed
	default:
		return StatusEven
	}
}
