package api

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

// SplitterServiceName is the fully-qualified name of the SplitterService.
const SplitterServiceName = "friendsplit.v1.SplitterService"

// Procedure paths of the SplitterService.
const (
	SplitterServiceCreateSessionProcedure        = "/friendsplit.v1.SplitterService/CreateSession"
	SplitterServiceEndSessionProcedure           = "/friendsplit.v1.SplitterService/EndSession"
	SplitterServiceGetViewProcedure              = "/friendsplit.v1.SplitterService/GetView"
	SplitterServiceToggleAddFriendPanelProcedure = "/friendsplit.v1.SplitterService/ToggleAddFriendPanel"
	SplitterServiceAddFriendProcedure            = "/friendsplit.v1.SplitterService/AddFriend"
	SplitterServiceSelectFriendProcedure         = "/friendsplit.v1.SplitterService/SelectFriend"
	SplitterServiceUpdateSplitFormProcedure      = "/friendsplit.v1.SplitterService/UpdateSplitForm"
	SplitterServiceSubmitSplitProcedure          = "/friendsplit.v1.SplitterService/SubmitSplit"
	SplitterServiceSplitBillProcedure            = "/friendsplit.v1.SplitterService/SplitBill"
)

// SplitterServiceHandler is implemented by the server.
type SplitterServiceHandler interface {
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error)
	EndSession(context.Context, *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error)
	GetView(context.Context, *connect.Request[GetViewRequest]) (*connect.Response[GetViewResponse], error)
	ToggleAddFriendPanel(context.Context, *connect.Request[ToggleAddFriendPanelRequest]) (*connect.Response[TransitionResponse], error)
	AddFriend(context.Context, *connect.Request[AddFriendRequest]) (*connect.Response[TransitionResponse], error)
	SelectFriend(context.Context, *connect.Request[SelectFriendRequest]) (*connect.Response[TransitionResponse], error)
	UpdateSplitForm(context.Context, *connect.Request[UpdateSplitFormRequest]) (*connect.Response[TransitionResponse], error)
	SubmitSplit(context.Context, *connect.Request[SubmitSplitRequest]) (*connect.Response[TransitionResponse], error)
	SplitBill(context.Context, *connect.Request[SplitBillRequest]) (*connect.Response[TransitionResponse], error)
}

// NewSplitterServiceHandler builds an HTTP handler serving every procedure of
// svc. It returns the path prefix to mount the handler on.
func NewSplitterServiceHandler(svc SplitterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	options := connect.WithHandlerOptions(opts...)

	handlers := map[string]http.Handler{
		SplitterServiceCreateSessionProcedure:        connect.NewUnaryHandler(SplitterServiceCreateSessionProcedure, svc.CreateSession, options),
		SplitterServiceEndSessionProcedure:           connect.NewUnaryHandler(SplitterServiceEndSessionProcedure, svc.EndSession, options),
		SplitterServiceGetViewProcedure:              connect.NewUnaryHandler(SplitterServiceGetViewProcedure, svc.GetView, options),
		SplitterServiceToggleAddFriendPanelProcedure: connect.NewUnaryHandler(SplitterServiceToggleAddFriendPanelProcedure, svc.ToggleAddFriendPanel, options),
		SplitterServiceAddFriendProcedure:            connect.NewUnaryHandler(SplitterServiceAddFriendProcedure, svc.AddFriend, options),
		SplitterServiceSelectFriendProcedure:         connect.NewUnaryHandler(SplitterServiceSelectFriendProcedure, svc.SelectFriend, options),
		SplitterServiceUpdateSplitFormProcedure:      connect.NewUnaryHandler(SplitterServiceUpdateSplitFormProcedure, svc.UpdateSplitForm, options),
		SplitterServiceSubmitSplitProcedure:          connect.NewUnaryHandler(SplitterServiceSubmitSplitProcedure, svc.SubmitSplit, options),
		SplitterServiceSplitBillProcedure:            connect.NewUnaryHandler(SplitterServiceSplitBillProcedure, svc.SplitBill, options),
	}

	return "/" + SplitterServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// SplitterServiceClient calls a remote SplitterService.
type SplitterServiceClient struct {
	createSession        *connect.Client[CreateSessionRequest, CreateSessionResponse]
	endSession           *connect.Client[EndSessionRequest, EndSessionResponse]
	getView              *connect.Client[GetViewRequest, GetViewResponse]
	toggleAddFriendPanel *connect.Client[ToggleAddFriendPanelRequest, TransitionResponse]
	addFriend            *connect.Client[AddFriendRequest, TransitionResponse]
	selectFriend         *connect.Client[SelectFriendRequest, TransitionResponse]
	updateSplitForm      *connect.Client[UpdateSplitFormRequest, TransitionResponse]
	submitSplit          *connect.Client[SubmitSplitRequest, TransitionResponse]
	splitBill            *connect.Client[SplitBillRequest, TransitionResponse]
}

// NewSplitterServiceClient constructs a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewSplitterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SplitterServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	options := connect.WithClientOptions(opts...)
	return &SplitterServiceClient{
		createSession:        connect.NewClient[CreateSessionRequest, CreateSessionResponse](httpClient, baseURL+SplitterServiceCreateSessionProcedure, options),
		endSession:           connect.NewClient[EndSessionRequest, EndSessionResponse](httpClient, baseURL+SplitterServiceEndSessionProcedure, options),
		getView:              connect.NewClient[GetViewRequest, GetViewResponse](httpClient, baseURL+SplitterServiceGetViewProcedure, options),
		toggleAddFriendPanel: connect.NewClient[ToggleAddFriendPanelRequest, TransitionResponse](httpClient, baseURL+SplitterServiceToggleAddFriendPanelProcedure, options),
		addFriend:            connect.NewClient[AddFriendRequest, TransitionResponse](httpClient, baseURL+SplitterServiceAddFriendProcedure, options),
		selectFriend:         connect.NewClient[SelectFriendRequest, TransitionResponse](httpClient, baseURL+SplitterServiceSelectFriendProcedure, options),
		updateSplitForm:      connect.NewClient[UpdateSplitFormRequest, TransitionResponse](httpClient, baseURL+SplitterServiceUpdateSplitFormProcedure, options),
		submitSplit:          connect.NewClient[SubmitSplitRequest, TransitionResponse](httpClient, baseURL+SplitterServiceSubmitSplitProcedure, options),
		splitBill:            connect.NewClient[SplitBillRequest, TransitionResponse](httpClient, baseURL+SplitterServiceSplitBillProcedure, options),
	}
}

func (c *SplitterServiceClient) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *SplitterServiceClient) EndSession(ctx context.Context, req *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}

func (c *SplitterServiceClient) GetView(ctx context.Context, req *connect.Request[GetViewRequest]) (*connect.Response[GetViewResponse], error) {
	return c.getView.CallUnary(ctx, req)
}

func (c *SplitterServiceClient) ToggleAddFriendPanel(ctx context.Context, req *connect.Request[ToggleAddFriendPanelRequest]) (*connect.Response[TransitionResponse], error) {
	return c.toggleAddFriendPanel.CallUnary(ctx, req)
}

func (c *SplitterServiceClient) AddFriend(ctx context.Context, req *connect.Request[AddFriendRequest]) (*connect.Response[TransitionResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

func (c *SplitterServiceClient) SelectFriend(ctx context.Context, req *connect.Request[SelectFriendRequest]) (*connect.Response[TransitionResponse], error) {
	return c.selectFriend.CallUnary(ctx, req)
}

func (c *SplitterServiceClient) UpdateSplitForm(ctx context.Context, req *connect.Request[UpdateSplitFormRequest]) (*connect.Response[TransitionResponse], error) {
	return c.updateSplitForm.CallUnary(ctx, req)
}

func (c *SplitterServiceClient) SubmitSplit(ctx context.Context, req *connect.Request[SubmitSplitRequest]) (*connect.Response[TransitionResponse], error) {
	return c.submitSplit.CallUnary(ctx, req)
}

func (c *SplitterServiceClient) SplitBill(ctx context.Context, req *connect.Request[SplitBillRequest]) (*connect.Response[TransitionResponse], error) {
	return c.splitBill.CallUnary(ctx, req)
}

// UnimplementedSplitterServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSplitterServiceHandler struct{}

var errUnimplemented = errors.New("not implemented")

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.Join(errUnimplemented, errors.New(procedure)))
}

func (UnimplementedSplitterServiceHandler) CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	return nil, unimplemented(SplitterServiceCreateSessionProcedure)
}

func (UnimplementedSplitterServiceHandler) EndSession(context.Context, *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error) {
	return nil, unimplemented(SplitterServiceEndSessionProcedure)
}

func (UnimplementedSplitterServiceHandler) GetView(context.Context, *connect.Request[GetViewRequest]) (*connect.Response[GetViewResponse], error) {
	return nil, unimplemented(SplitterServiceGetViewProcedure)
}

func (UnimplementedSplitterServiceHandler) ToggleAddFriendPanel(context.Context, *connect.Request[ToggleAddFriendPanelRequest]) (*connect.Response[TransitionResponse], error) {
	return nil, unimplemented(SplitterServiceToggleAddFriendPanelProcedure)
}

func (UnimplementedSplitterServiceHandler) AddFriend(context.Context, *connect.Request[AddFriendRequest]) (*connect.Response[TransitionResponse], error) {
	return nil, unimplemented(SplitterServiceAddFriendProcedure)
}

func (UnimplementedSplitterServiceHandler) SelectFriend(context.Context, *connect.Request[SelectFriendRequest]) (*connect.Response[TransitionResponse], error) {
	return nil, unimplemented(SplitterServiceSelectFriendProcedure)
}

func (UnimplementedSplitterServiceHandler) UpdateSplitForm(context.Context, *connect.Request[UpdateSplitFormRequest]) (*connect.Response[TransitionResponse], error) {
	return nil, unimplemented(SplitterServiceUpdateSplitFormProcedure)
}

func (UnimplementedSplitterServiceHandler) SubmitSplit(context.Context, *connect.Request[SubmitSplitRequest]) (*connect.Response[TransitionResponse], error) {
	return nil, unimplemented(SplitterServiceSubmitSplitProcedure)
}

func (UnimplementedSplitterServiceHandler) SplitBill(context.Context, *connect.Request[SplitBillRequest]) (*connect.Response[TransitionResponse], error) {
	return nil, unimplemented(SplitterServiceSplitBillProcedure)
}
