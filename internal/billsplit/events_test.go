package billsplit

import (
	"fmt"
	"testing"

	"github.com/mmynk/friendsplit/internal/models"
)

func sequentialIDs() IDGenerator {
	n := 0
	return IDFunc(func() string {
		n++
		return fmt.Sprintf("f%d", n)
	})
}

func TestSplitterApply(t *testing.T) {
	sp := New(WithIDGenerator(sequentialIDs()), WithCurrency("USD"), WithSeedFriends(true))
	s := sp.NewState()
	if len(s.Friends) != 3 {
		t.Fatalf("seeded friends = %d, want 3", len(s.Friends))
	}

	events := []Event{
		ToggleAddFriendPanel{},
		EditFriendName{Value: "Nina"},
		SubmitAddFriend{},
		SelectFriend{ID: "f1"},
		EditBill{Raw: "100"},
		EditPaidByUser{Raw: "40.50"},
		ChoosePayer{Payer: models.PayerUser},
		SubmitSplit{},
	}
	for _, e := range events {
		var ok bool
		s, ok = sp.Apply(s, e)
		if !ok {
			t.Fatalf("%s not applied", e.Op())
		}
	}

	nina, ok := s.Friend("f1")
	if !ok {
		t.Fatal("expected friend f1")
	}
	if nina.Balance != 5950 {
		t.Errorf("Nina balance = %d, want 5950", nina.Balance)
	}
	if nina.Image != DefaultImage+"?=f1" {
		t.Errorf("Nina image = %q", nina.Image)
	}
}

func TestSplitterApplyCoercesBadInput(t *testing.T) {
	sp := New(WithSeedFriends(true))
	s := sp.NewState()
	s, _ = sp.Apply(s, SelectFriend{ID: "118836"})
	s, _ = sp.Apply(s, EditBill{Raw: "abc"})
	if s.SplitForm.Bill != 0 {
		t.Errorf("Bill = %d, want 0 for non-numeric input", s.SplitForm.Bill)
	}
	if _, ok := sp.Apply(s, SubmitSplit{}); ok {
		t.Error("expected submit with empty bill to be rejected")
	}
}

func TestSplitterApplyDirectAdd(t *testing.T) {
	sp := New(WithIDGenerator(sequentialIDs()))
	s := sp.NewState()
	if len(s.Friends) != 0 {
		t.Fatalf("unseeded state has %d friends", len(s.Friends))
	}
	s, ok := sp.Apply(s, AddFriend{Name: "Zed", Image: "https://x/y.png"})
	if !ok || len(s.Friends) != 1 {
		t.Fatalf("AddFriend applied=%v friends=%d", ok, len(s.Friends))
	}
	if _, ok := sp.Apply(s, AddFriend{Name: "", Image: "https://x/y.png"}); ok {
		t.Error("expected empty name to be rejected")
	}
}
