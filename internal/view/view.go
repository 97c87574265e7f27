// Package view derives everything a renderer needs to display a session.
// Nothing in here is stored: a View is rebuilt from the state after every
// transition.
package view

import (
	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/calculator"
	"github.com/mmynk/friendsplit/internal/models"
)

// FriendRow is one entry of the friend list.
type FriendRow struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Image       string               `json:"image"`
	Balance     int64                `json:"balance"`
	Status      models.BalanceStatus `json:"status"`
	Settlement  string               `json:"settlement"`
	Selected    bool                 `json:"selected"`
	ButtonLabel string               `json:"button_label"`
}

// AddFriendForm is the add-friend panel.
type AddFriendForm struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// SplitBillForm is the split-bill panel for the selected friend.
type SplitBillForm struct {
	FriendID      string       `json:"friend_id"`
	FriendName    string       `json:"friend_name"`
	Bill          string       `json:"bill"`
	PaidByUser    string       `json:"paid_by_user"`
	FriendExpense string       `json:"friend_expense"`
	WhoIsPaying   models.Payer `json:"who_is_paying"`
}

// Summary totals the list.
type Summary struct {
	Owed  string `json:"owed"`
	Owing string `json:"owing"`
	Net   string `json:"net"`
}

// View is the derived, render-ready form of a billsplit.State.
type View struct {
	Currency       string         `json:"currency"`
	Friends        []FriendRow    `json:"friends"`
	AddFormVisible bool           `json:"add_form_visible"`
	AddForm        *AddFriendForm `json:"add_form,omitempty"`
	ToggleLabel    string         `json:"toggle_label"`
	SplitForm      *SplitBillForm `json:"split_form,omitempty"`
	Summary        Summary        `json:"summary"`
}

// Build derives the view of s with amounts shown in currency.
func Build(s billsplit.State, currency string) View {
	v := View{
		Currency:       currency,
		Friends:        make([]FriendRow, 0, len(s.Friends)),
		AddFormVisible: s.AddFormVisible,
		ToggleLabel:    "Add friend",
	}

	selected, hasSelection := s.SelectedFriend()
	for _, f := range s.Friends {
		row := FriendRow{
			ID:          f.ID,
			Name:        f.Name,
			Image:       f.Image,
			Balance:     f.Balance,
			Status:      f.Status(),
			Settlement:  calculator.Settlement(f.Name, f.Balance, currency),
			ButtonLabel: "Select",
		}
		if hasSelection && f.ID == selected.ID {
			row.Selected = true
			row.ButtonLabel = "Close"
		}
		v.Friends = append(v.Friends, row)
	}

	if s.AddFormVisible {
		v.ToggleLabel = "close"
		v.AddForm = &AddFriendForm{Name: s.AddForm.Name, Image: s.AddForm.Image}
	}

	if hasSelection {
		v.SplitForm = &SplitBillForm{
			FriendID:      selected.ID,
			FriendName:    selected.Name,
			Bill:          calculator.FormatAmount(s.SplitForm.Bill, currency),
			PaidByUser:    calculator.FormatAmount(s.SplitForm.PaidByUser, currency),
			FriendExpense: calculator.FormatAmount(s.SplitForm.FriendExpense(), currency),
			WhoIsPaying:   s.SplitForm.WhoIsPaying,
		}
	}

	totals := calculator.CalculateTotals(s.Friends)
	v.Summary = Summary{
		Owed:  calculator.Display(totals.Owed, currency),
		Owing: calculator.Display(totals.Owing, currency),
		Net:   calculator.Display(totals.Net(), currency),
	}
	return v
}
