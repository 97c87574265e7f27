// Package api defines the friendsplit.v1 SplitterService contract: message
// types, procedure names, and Connect handler and client constructors.
//
// Messages are plain Go structs carried by a JSON codec, so any Connect
// client speaking application/json can drive a session.
package api

import "github.com/mmynk/friendsplit/internal/view"

// SessionHeader carries the session ID on every call except CreateSession.
const SessionHeader = "Friendsplit-Session"

type CreateSessionRequest struct{}

type CreateSessionResponse struct {
	SessionID string     `json:"session_id"`
	View      *view.View `json:"view"`
}

type EndSessionRequest struct{}

type EndSessionResponse struct{}

type GetViewRequest struct{}

type GetViewResponse struct {
	View *view.View `json:"view"`
}

// TransitionResponse is returned by every state-changing procedure.
// Applied is false when the input was rejected; View is then unchanged.
type TransitionResponse struct {
	Applied bool       `json:"applied"`
	View    *view.View `json:"view"`
}

type ToggleAddFriendPanelRequest struct{}

type AddFriendRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type SelectFriendRequest struct {
	FriendID string `json:"friend_id"`
}

// UpdateSplitFormRequest edits the split-bill form. Fields left nil are not
// touched; set fields are applied in order bill, paid, payer.
type UpdateSplitFormRequest struct {
	Bill        *string `json:"bill,omitempty"`
	PaidByUser  *string `json:"paid_by_user,omitempty"`
	WhoIsPaying *string `json:"who_is_paying,omitempty"`
}

type SubmitSplitRequest struct{}

// SplitBillRequest applies Value (minor units) to the selected friend.
type SplitBillRequest struct {
	Value int64 `json:"value"`
}
