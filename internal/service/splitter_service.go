package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/middleware"
	"github.com/mmynk/friendsplit/internal/models"
	"github.com/mmynk/friendsplit/internal/storage"
	"github.com/mmynk/friendsplit/pkg/api"
)

// SplitterService implements the Connect SplitterService
type SplitterService struct {
	api.UnimplementedSplitterServiceHandler
	sessions *Sessions
}

// NewSplitterService creates a new SplitterService over the given sessions.
func NewSplitterService(sessions *Sessions) *SplitterService {
	return &SplitterService{sessions: sessions}
}

// connectError maps storage errors onto Connect codes.
func connectError(err error) error {
	if errors.Is(err, storage.ErrSessionNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return connect.NewError(connect.CodeCanceled, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// transition applies events to the caller's session and renders the result.
func (s *SplitterService) transition(ctx context.Context, name string, events ...billsplit.Event) (*connect.Response[api.TransitionResponse], error) {
	sessionID := middleware.GetSessionID(ctx)
	sess, applied, err := s.sessions.Dispatch(ctx, sessionID, events...)
	if err != nil {
		slog.Error(name+" failed", "session_id", sessionID, "error", err)
		return nil, connectError(err)
	}

	slog.Info(name+" handled", "session_id", sessionID, "applied", applied)

	return connect.NewResponse(&api.TransitionResponse{
		Applied: applied,
		View:    s.sessions.View(sess),
	}), nil
}

// CreateSession starts a session and returns its ID and first view.
func (s *SplitterService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	slog.Info("CreateSession request received")

	sess, err := s.sessions.Create(ctx)
	if err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreateSessionResponse{
		SessionID: sess.ID,
		View:      s.sessions.View(sess),
	}), nil
}

// EndSession discards the caller's session.
func (s *SplitterService) EndSession(ctx context.Context, req *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error) {
	sessionID := middleware.GetSessionID(ctx)
	slog.Info("EndSession request received", "session_id", sessionID)

	if err := s.sessions.End(ctx, sessionID); err != nil {
		slog.Error("EndSession failed", "session_id", sessionID, "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.EndSessionResponse{}), nil
}

// GetView renders the caller's session without changing it.
func (s *SplitterService) GetView(ctx context.Context, req *connect.Request[api.GetViewRequest]) (*connect.Response[api.GetViewResponse], error) {
	sessionID := middleware.GetSessionID(ctx)
	slog.Debug("GetView request received", "session_id", sessionID)

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		slog.Error("GetView failed", "session_id", sessionID, "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.GetViewResponse{View: s.sessions.View(sess)}), nil
}

// ToggleAddFriendPanel opens or closes the add-friend panel.
func (s *SplitterService) ToggleAddFriendPanel(ctx context.Context, req *connect.Request[api.ToggleAddFriendPanelRequest]) (*connect.Response[api.TransitionResponse], error) {
	return s.transition(ctx, "ToggleAddFriendPanel", billsplit.ToggleAddFriendPanel{})
}

// AddFriend adds a friend. Empty fields are ignored rather than rejected.
func (s *SplitterService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.TransitionResponse], error) {
	slog.Info("AddFriend request received",
		"session_id", middleware.GetSessionID(ctx),
		"name", req.Msg.Name,
	)
	return s.transition(ctx, "AddFriend", billsplit.AddFriend{Name: req.Msg.Name, Image: req.Msg.Image})
}

// SelectFriend toggles the selection of a friend.
func (s *SplitterService) SelectFriend(ctx context.Context, req *connect.Request[api.SelectFriendRequest]) (*connect.Response[api.TransitionResponse], error) {
	return s.transition(ctx, "SelectFriend", billsplit.SelectFriend{ID: req.Msg.FriendID})
}

// UpdateSplitForm edits the split-bill form fields that are present.
func (s *SplitterService) UpdateSplitForm(ctx context.Context, req *connect.Request[api.UpdateSplitFormRequest]) (*connect.Response[api.TransitionResponse], error) {
	var events []billsplit.Event
	if req.Msg.Bill != nil {
		events = append(events, billsplit.EditBill{Raw: *req.Msg.Bill})
	}
	if req.Msg.PaidByUser != nil {
		events = append(events, billsplit.EditPaidByUser{Raw: *req.Msg.PaidByUser})
	}
	if req.Msg.WhoIsPaying != nil {
		payer, err := models.ParsePayer(*req.Msg.WhoIsPaying)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		events = append(events, billsplit.ChoosePayer{Payer: payer})
	}
	return s.transition(ctx, "UpdateSplitForm", events...)
}

// SubmitSplit submits the split-bill form.
func (s *SplitterService) SubmitSplit(ctx context.Context, req *connect.Request[api.SubmitSplitRequest]) (*connect.Response[api.TransitionResponse], error) {
	return s.transition(ctx, "SubmitSplit", billsplit.SubmitSplit{})
}

// SplitBill applies a precomputed adjustment to the selected friend.
func (s *SplitterService) SplitBill(ctx context.Context, req *connect.Request[api.SplitBillRequest]) (*connect.Response[api.TransitionResponse], error) {
	slog.Info("SplitBill request received",
		"session_id", middleware.GetSessionID(ctx),
		"value", req.Msg.Value,
	)
	return s.transition(ctx, "SplitBill", billsplit.SplitBill{Value: req.Msg.Value})
}
