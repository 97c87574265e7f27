package billsplit

import (
	"github.com/mmynk/friendsplit/internal/calculator"
	"github.com/mmynk/friendsplit/internal/models"
)

// SetFriendName updates the name typed into the add-friend form.
func (s State) SetFriendName(name string) (State, bool) {
	s.AddForm.Name = name
	return s, true
}

// SetFriendImage updates the image URL typed into the add-friend form.
func (s State) SetFriendImage(image string) (State, bool) {
	s.AddForm.Image = image
	return s, true
}

// SubmitAddFriend adds a friend from the add-friend form.
func (s State) SubmitAddFriend(id string) (State, bool) {
	return s.AddFriend(id, s.AddForm.Name, s.AddForm.Image)
}

// SetBill updates the bill total. A share already entered that exceeds the
// new total is lowered to it.
func (s State) SetBill(bill int64) (State, bool) {
	if bill < 0 {
		bill = 0
	}
	s.SplitForm.Bill = bill
	if s.SplitForm.PaidByUser > bill {
		s.SplitForm.PaidByUser = bill
	}
	return s, true
}

// SetPaidByUser updates the user's own share of the bill. A share above the
// bill total is not accepted: the previous value is retained and the
// transition reports false.
func (s State) SetPaidByUser(paid int64) (State, bool) {
	prev := s.SplitForm.PaidByUser
	s.SplitForm.PaidByUser = calculator.ClampPaid(s.SplitForm.Bill, prev, paid)
	if paid > s.SplitForm.Bill {
		return s, false
	}
	return s, true
}

// SetWhoIsPaying records who paid the bill.
func (s State) SetWhoIsPaying(p models.Payer) (State, bool) {
	if !p.Valid() {
		return s, false
	}
	s.SplitForm.WhoIsPaying = p
	return s, true
}

// SubmitSplit applies the split-bill form to the selected friend. Both the
// bill and the user's share must have been entered.
func (s State) SubmitSplit() (State, bool) {
	if !s.SplitForm.Ready() {
		return s, false
	}
	return s.SplitBill(s.SplitForm.Value())
}
