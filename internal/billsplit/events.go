package billsplit

import (
	"github.com/mmynk/friendsplit/internal/calculator"
	"github.com/mmynk/friendsplit/internal/models"
)

// Event is a user interaction decoded by a renderer.
type Event interface {
	// Op names the transition for logs and metrics.
	Op() string
}

type (
	// ToggleAddFriendPanel opens or closes the add-friend panel.
	ToggleAddFriendPanel struct{}

	// AddFriend adds a friend directly, bypassing the form.
	AddFriend struct {
		Name  string
		Image string
	}

	// EditFriendName is a keystroke in the add-friend name field.
	EditFriendName struct{ Value string }

	// EditFriendImage is a keystroke in the add-friend image field.
	EditFriendImage struct{ Value string }

	// SubmitAddFriend submits the add-friend form.
	SubmitAddFriend struct{}

	// SelectFriend clicks the Select/Close button of a friend.
	SelectFriend struct{ ID string }

	// EditBill is a keystroke in the bill field. Raw is parsed in major units.
	EditBill struct{ Raw string }

	// EditPaidByUser is a keystroke in the user's expense field.
	EditPaidByUser struct{ Raw string }

	// ChoosePayer picks who paid the bill.
	ChoosePayer struct{ Payer models.Payer }

	// SubmitSplit submits the split-bill form.
	SubmitSplit struct{}

	// SplitBill applies a precomputed adjustment to the selected friend.
	SplitBill struct{ Value int64 }
)

func (ToggleAddFriendPanel) Op() string { return "toggle_add_friend_panel" }
func (AddFriend) Op() string            { return "add_friend" }
func (EditFriendName) Op() string       { return "edit_friend_name" }
func (EditFriendImage) Op() string      { return "edit_friend_image" }
func (SubmitAddFriend) Op() string      { return "submit_add_friend" }
func (SelectFriend) Op() string         { return "select_friend" }
func (EditBill) Op() string             { return "edit_bill" }
func (EditPaidByUser) Op() string       { return "edit_paid_by_user" }
func (ChoosePayer) Op() string          { return "choose_payer" }
func (SubmitSplit) Op() string          { return "submit_split" }
func (SplitBill) Op() string            { return "split_bill" }

// Splitter applies events to states. It owns the collaborators the pure
// transitions need: an identifier source, the currency amounts are parsed
// in, and the default avatar URL.
type Splitter struct {
	ids          IDGenerator
	currency     string
	defaultImage string
	seed         bool
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Splitter) { s.ids = g }
}

// WithCurrency sets the ISO 4217 currency for parsing and display.
func WithCurrency(code string) Option {
	return func(s *Splitter) { s.currency = code }
}

// WithDefaultImage sets the avatar URL the add-friend form starts with.
func WithDefaultImage(url string) Option {
	return func(s *Splitter) { s.defaultImage = url }
}

// WithSeedFriends makes new states start with the demo roster.
func WithSeedFriends(seed bool) Option {
	return func(s *Splitter) { s.seed = seed }
}

// New creates a Splitter.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		ids:          UUIDGenerator,
		currency:     calculator.DefaultCurrency,
		defaultImage: DefaultImage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Currency returns the currency amounts are expressed in.
func (sp *Splitter) Currency() string {
	return sp.currency
}

// NewState returns the state a fresh session starts with.
func (sp *Splitter) NewState() State {
	if sp.seed {
		return NewState(sp.defaultImage, SeedFriends(sp.currency)...)
	}
	return NewState(sp.defaultImage)
}

// Apply runs the transition for e. Unknown events are not applied.
func (sp *Splitter) Apply(s State, e Event) (State, bool) {
	switch e := e.(type) {
	case ToggleAddFriendPanel:
		return s.ToggleAddFriendPanel()
	case AddFriend:
		return s.AddFriend(sp.ids.NewID(), e.Name, e.Image)
	case EditFriendName:
		return s.SetFriendName(e.Value)
	case EditFriendImage:
		return s.SetFriendImage(e.Value)
	case SubmitAddFriend:
		return s.SubmitAddFriend(sp.ids.NewID())
	case SelectFriend:
		return s.SelectFriend(e.ID)
	case EditBill:
		v, _ := calculator.ParseAmount(e.Raw, sp.currency)
		return s.SetBill(v)
	case EditPaidByUser:
		v, _ := calculator.ParseAmount(e.Raw, sp.currency)
		return s.SetPaidByUser(v)
	case ChoosePayer:
		return s.SetWhoIsPaying(e.Payer)
	case SubmitSplit:
		return s.SubmitSplit()
	case SplitBill:
		return s.SplitBill(e.Value)
	default:
		return s, false
	}
}
