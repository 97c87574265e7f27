package models

import "fmt"

// Payer identifies who paid a bill.
type Payer string

const (
	// PayerUser means the user paid the whole bill.
	PayerUser Payer = "user"
	// PayerFriend means the selected friend paid the whole bill.
	PayerFriend Payer = "friend"
)

// Valid reports whether p is a known payer.
func (p Payer) Valid() bool {
	return p == PayerUser || p == PayerFriend
}

// ParsePayer converts form or API input into a Payer.
func ParsePayer(s string) (Payer, error) {
	p := Payer(s)
	if !p.Valid() {
		return "", fmt.Errorf("payer must be %q or %q, got %q", PayerUser, PayerFriend, s)
	}
	return p, nil
}
