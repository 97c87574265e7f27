// Package billsplit holds the friend list and bill-splitting state machine.
//
// State is a plain value. Every transition returns a new State together with
// a flag telling whether it was applied; rejected transitions (empty fields,
// nothing selected, unknown ids) return the state unchanged. Nothing here
// performs I/O, so renderers can drive it from any event source.
package billsplit

import (
	"fmt"
	"slices"

	"github.com/mmynk/friendsplit/internal/calculator"
	"github.com/mmynk/friendsplit/internal/models"
)

// DefaultImage is the avatar service used to prefill the add-friend form.
const DefaultImage = "https://i.pravatar.cc/48"

// AddFriendForm holds the controlled values of the add-friend form.
type AddFriendForm struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// SplitBillForm holds the controlled values of the split-bill form.
// PaidByUser never exceeds Bill.
type SplitBillForm struct {
	Bill        int64        `json:"bill"`
	PaidByUser  int64        `json:"paid_by_user"`
	WhoIsPaying models.Payer `json:"who_is_paying"`
}

// FriendExpense is the friend's share of the bill being split.
func (f SplitBillForm) FriendExpense() int64 {
	return calculator.FriendExpense(f.Bill, f.PaidByUser)
}

// Value is the balance adjustment the form would submit.
func (f SplitBillForm) Value() int64 {
	return calculator.SplitValue(f.Bill, f.PaidByUser, f.WhoIsPaying)
}

// Ready reports whether both amounts have been entered.
func (f SplitBillForm) Ready() bool {
	return f.Bill != 0 && f.PaidByUser != 0
}

func emptySplitForm() SplitBillForm {
	return SplitBillForm{WhoIsPaying: models.PayerUser}
}

// State is the complete state of one friend list session.
type State struct {
	Friends        []models.Friend `json:"friends"`
	Selected       string          `json:"selected,omitempty"`
	AddFormVisible bool            `json:"add_form_visible"`
	AddForm        AddFriendForm   `json:"add_form"`
	SplitForm      SplitBillForm   `json:"split_form"`

	// AvatarBase is the image URL the add-friend form resets to.
	AvatarBase string `json:"avatar_base"`
}

// NewState returns an empty state whose add-friend form is prefilled with
// defaultImage (DefaultImage when empty).
func NewState(defaultImage string, friends ...models.Friend) State {
	if defaultImage == "" {
		defaultImage = DefaultImage
	}
	return State{
		Friends:    slices.Clone(friends),
		AddForm:    AddFriendForm{Image: defaultImage},
		SplitForm:  emptySplitForm(),
		AvatarBase: defaultImage,
	}
}

// SeedFriends returns the starter roster, with balances expressed in minor
// units of currency.
func SeedFriends(currency string) []models.Friend {
	unit := calculator.MajorUnit(currency)
	return []models.Friend{
		{ID: "118836", Name: "Clark", Image: "https://i.pravatar.cc/48?u=118836", Balance: -7 * unit},
		{ID: "933372", Name: "Sarah", Image: "https://i.pravatar.cc/48?u=933372", Balance: 20 * unit},
		{ID: "499476", Name: "Anthony", Image: "https://i.pravatar.cc/48?u=499476", Balance: 0},
	}
}

func (s State) clone() State {
	s.Friends = slices.Clone(s.Friends)
	return s
}

func (s State) resetAddForm() State {
	s.AddForm = AddFriendForm{Image: s.AvatarBase}
	if s.AddForm.Image == "" {
		s.AddForm.Image = DefaultImage
	}
	return s
}

// friendIndex returns the position of the friend with id, or -1.
func (s State) friendIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.Friends, func(f models.Friend) bool { return f.ID == id })
}

// SelectedFriend resolves the selection against the current roster.
func (s State) SelectedFriend() (models.Friend, bool) {
	i := s.friendIndex(s.Selected)
	if i < 0 {
		return models.Friend{}, false
	}
	return s.Friends[i], true
}

// Friend looks up a friend by id.
func (s State) Friend(id string) (models.Friend, bool) {
	i := s.friendIndex(id)
	if i < 0 {
		return models.Friend{}, false
	}
	return s.Friends[i], true
}

// ToggleAddFriendPanel opens or closes the add-friend panel. Closing the panel
// discards whatever was typed into it.
func (s State) ToggleAddFriendPanel() (State, bool) {
	s.AddFormVisible = !s.AddFormVisible
	if !s.AddFormVisible {
		s = s.resetAddForm()
	}
	return s, true
}

// AddFriend appends a friend with a zero balance and closes the add panel.
// It is a no-op when name, image or id is empty, or when id is already taken.
func (s State) AddFriend(id, name, image string) (State, bool) {
	if name == "" || image == "" || id == "" || s.friendIndex(id) >= 0 {
		return s, false
	}
	s = s.clone()
	s.Friends = append(s.Friends, models.Friend{
		ID:    id,
		Name:  name,
		Image: fmt.Sprintf("%s?=%s", image, id),
	})
	s.AddFormVisible = false
	return s.resetAddForm(), true
}

// SelectFriend toggles the selection of the friend with id. Selecting a
// friend closes the add-friend panel; deselecting leaves it alone.
func (s State) SelectFriend(id string) (State, bool) {
	if s.friendIndex(id) < 0 {
		return s, false
	}
	if s.Selected == id {
		s.Selected = ""
	} else {
		s.Selected = id
		s.AddFormVisible = false
		s = s.resetAddForm()
	}
	s.SplitForm = emptySplitForm()
	return s, true
}

// SplitBill adds value to the selected friend's balance and clears the
// selection. It is a no-op when no friend is selected or when the balance
// would overflow.
func (s State) SplitBill(value int64) (State, bool) {
	i := s.friendIndex(s.Selected)
	if i < 0 {
		return s, false
	}
	balance, ok := calculator.AddBalance(s.Friends[i].Balance, value)
	if !ok {
		return s, false
	}
	s = s.clone()
	s.Friends[i].Balance = balance
	s.Selected = ""
	s.SplitForm = emptySplitForm()
	return s, true
}
