package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/metrics"
	"github.com/mmynk/friendsplit/internal/middleware"
	"github.com/mmynk/friendsplit/internal/models"
	"github.com/mmynk/friendsplit/internal/storage/memory"
	"github.com/mmynk/friendsplit/pkg/api"
)

type testEnv struct {
	server  *httptest.Server
	metrics *metrics.Metrics
}

// client returns a SplitterService client bound to sessionID.
func (e *testEnv) client(sessionID string) *api.SplitterServiceClient {
	var opts []connect.ClientOption
	if sessionID != "" {
		opts = append(opts, connect.WithInterceptors(middleware.AttachSession(sessionID)))
	}
	return api.NewSplitterServiceClient(http.DefaultClient, e.server.URL, opts...)
}

// setupTestServer creates a test server with an in-memory session store
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store := memory.New()
	m := metrics.New(prometheus.NewRegistry())

	n := 0
	splitter := billsplit.New(
		billsplit.WithSeedFriends(true),
		billsplit.WithIDGenerator(billsplit.IDFunc(func() string {
			n++
			return fmt.Sprintf("friend-%d", n)
		})),
	)
	sessions := NewSessions(store, splitter, m, 0)

	path, handler := api.NewSplitterServiceHandler(
		NewSplitterService(sessions),
		connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			middleware.RequireSession(),
			middleware.LoggingInterceptor(),
		),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{server: server, metrics: m}
}

// newSession creates a session and returns a client bound to it.
func newSession(t *testing.T, env *testEnv) (*api.SplitterServiceClient, string) {
	t.Helper()
	resp, err := env.client("").CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return env.client(resp.Msg.SessionID), resp.Msg.SessionID
}

func strPtr(s string) *string { return &s }

func TestCreateSession(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client("").CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if resp.Msg.SessionID == "" {
		t.Error("expected non-empty session ID")
	}
	if resp.Msg.View == nil {
		t.Fatal("expected view in response")
	}
	if len(resp.Msg.View.Friends) != 3 {
		t.Errorf("friends: expected 3, got %d", len(resp.Msg.View.Friends))
	}
	if got := resp.Msg.View.Friends[0].Settlement; got != "You owe Clark $7.00" {
		t.Errorf("settlement: got %q", got)
	}
}

func TestMissingSessionHeader(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.client("").GetView(context.Background(), connect.NewRequest(&api.GetViewRequest{}))
	if err == nil {
		t.Fatal("expected error without session header")
	}
	if code := connect.CodeOf(err); code != connect.CodeUnauthenticated {
		t.Errorf("expected CodeUnauthenticated, got %v", code)
	}
}

func TestUnknownSession(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.client("nonexistent-id").ToggleAddFriendPanel(context.Background(), connect.NewRequest(&api.ToggleAddFriendPanelRequest{}))
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	connectErr, ok := err.(*connect.Error)
	if !ok {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != connect.CodeNotFound {
		t.Errorf("expected CodeNotFound, got %v", connectErr.Code())
	}
}

func TestAddFriendFlow(t *testing.T) {
	env := setupTestServer(t)
	client, _ := newSession(t, env)
	ctx := context.Background()

	toggle, err := client.ToggleAddFriendPanel(ctx, connect.NewRequest(&api.ToggleAddFriendPanelRequest{}))
	if err != nil {
		t.Fatalf("ToggleAddFriendPanel failed: %v", err)
	}
	if !toggle.Msg.View.AddFormVisible || toggle.Msg.View.ToggleLabel != "close" {
		t.Errorf("expected add form open, got %+v", toggle.Msg.View)
	}

	rejected, err := client.AddFriend(ctx, connect.NewRequest(&api.AddFriendRequest{Name: "", Image: billsplit.DefaultImage}))
	if err != nil {
		t.Fatalf("AddFriend with empty name should not error: %v", err)
	}
	if rejected.Msg.Applied {
		t.Error("expected empty name to be ignored")
	}
	if len(rejected.Msg.View.Friends) != 3 {
		t.Errorf("friends: expected 3, got %d", len(rejected.Msg.View.Friends))
	}

	added, err := client.AddFriend(ctx, connect.NewRequest(&api.AddFriendRequest{Name: "Nina", Image: billsplit.DefaultImage}))
	if err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if !added.Msg.Applied {
		t.Fatal("expected AddFriend to be applied")
	}
	friends := added.Msg.View.Friends
	if len(friends) != 4 || friends[3].Name != "Nina" {
		t.Fatalf("unexpected friends: %+v", friends)
	}
	if friends[3].Settlement != "You and Nina are even" {
		t.Errorf("settlement: got %q", friends[3].Settlement)
	}
	if added.Msg.View.AddFormVisible {
		t.Error("expected add form closed after adding")
	}
}

func TestSplitFlow(t *testing.T) {
	tests := []struct {
		name        string
		payer       string
		wantBalance int64
		wantText    string
	}{
		{name: "user pays", payer: "user", wantBalance: -700 + 6000, wantText: "Clark owes you $53.00"},
		{name: "friend pays", payer: "friend", wantBalance: -700 - 4000, wantText: "You owe Clark $47.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServer(t)
			client, _ := newSession(t, env)
			ctx := context.Background()

			sel, err := client.SelectFriend(ctx, connect.NewRequest(&api.SelectFriendRequest{FriendID: "118836"}))
			if err != nil {
				t.Fatalf("SelectFriend failed: %v", err)
			}
			if sel.Msg.View.SplitForm == nil || sel.Msg.View.SplitForm.FriendName != "Clark" {
				t.Fatalf("expected split form for Clark, got %+v", sel.Msg.View.SplitForm)
			}

			upd, err := client.UpdateSplitForm(ctx, connect.NewRequest(&api.UpdateSplitFormRequest{
				Bill:        strPtr("100"),
				PaidByUser:  strPtr("40"),
				WhoIsPaying: strPtr(tt.payer),
			}))
			if err != nil {
				t.Fatalf("UpdateSplitForm failed: %v", err)
			}
			if got := upd.Msg.View.SplitForm.FriendExpense; got != "60" {
				t.Errorf("friend expense: got %q, want 60", got)
			}

			sub, err := client.SubmitSplit(ctx, connect.NewRequest(&api.SubmitSplitRequest{}))
			if err != nil {
				t.Fatalf("SubmitSplit failed: %v", err)
			}
			if !sub.Msg.Applied {
				t.Fatal("expected split to be applied")
			}
			clark := sub.Msg.View.Friends[0]
			if clark.Balance != tt.wantBalance {
				t.Errorf("balance: got %d, want %d", clark.Balance, tt.wantBalance)
			}
			if clark.Settlement != tt.wantText {
				t.Errorf("settlement: got %q, want %q", clark.Settlement, tt.wantText)
			}
			if sub.Msg.View.SplitForm != nil {
				t.Error("expected selection cleared after split")
			}
		})
	}
}

func TestUpdateSplitFormClamp(t *testing.T) {
	env := setupTestServer(t)
	client, _ := newSession(t, env)
	ctx := context.Background()

	if _, err := client.SelectFriend(ctx, connect.NewRequest(&api.SelectFriendRequest{FriendID: "933372"})); err != nil {
		t.Fatalf("SelectFriend failed: %v", err)
	}
	resp, err := client.UpdateSplitForm(ctx, connect.NewRequest(&api.UpdateSplitFormRequest{
		Bill:       strPtr("100"),
		PaidByUser: strPtr("150"),
	}))
	if err != nil {
		t.Fatalf("UpdateSplitForm failed: %v", err)
	}
	if resp.Msg.Applied {
		t.Error("expected over-bill share to be reported as not applied")
	}
	if got := resp.Msg.View.SplitForm.PaidByUser; got != "" {
		t.Errorf("paid by user: got %q, want empty", got)
	}
	if got := resp.Msg.View.SplitForm.Bill; got != "100" {
		t.Errorf("bill: got %q, want 100", got)
	}
}

func TestUpdateSplitFormBadPayer(t *testing.T) {
	env := setupTestServer(t)
	client, _ := newSession(t, env)

	_, err := client.UpdateSplitForm(context.Background(), connect.NewRequest(&api.UpdateSplitFormRequest{
		WhoIsPaying: strPtr("nobody"),
	}))
	if code := connect.CodeOf(err); code != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument, got %v", code)
	}
}

func TestSplitBillWithoutSelection(t *testing.T) {
	env := setupTestServer(t)
	client, _ := newSession(t, env)

	resp, err := client.SplitBill(context.Background(), connect.NewRequest(&api.SplitBillRequest{Value: 2000}))
	if err != nil {
		t.Fatalf("SplitBill failed: %v", err)
	}
	if resp.Msg.Applied {
		t.Error("expected SplitBill without selection to be ignored")
	}
	if got := resp.Msg.View.Friends[0].Balance; got != -700 {
		t.Errorf("balance changed: %d", got)
	}

	if got := testutil.ToFloat64(env.metrics.Transitions.WithLabelValues("split_bill", "ignored")); got != 1 {
		t.Errorf("ignored split_bill transitions = %v, want 1", got)
	}
}

func TestSplitBillDirect(t *testing.T) {
	env := setupTestServer(t)
	client, _ := newSession(t, env)
	ctx := context.Background()

	if _, err := client.SelectFriend(ctx, connect.NewRequest(&api.SelectFriendRequest{FriendID: "118836"})); err != nil {
		t.Fatalf("SelectFriend failed: %v", err)
	}
	resp, err := client.SplitBill(ctx, connect.NewRequest(&api.SplitBillRequest{Value: 2000}))
	if err != nil {
		t.Fatalf("SplitBill failed: %v", err)
	}
	if got := resp.Msg.View.Friends[0].Balance; got != 1300 {
		t.Errorf("balance: got %d, want 1300", got)
	}
}

func TestSplitBillOverflow(t *testing.T) {
	env := setupTestServer(t)
	client, _ := newSession(t, env)
	ctx := context.Background()

	if _, err := client.SelectFriend(ctx, connect.NewRequest(&api.SelectFriendRequest{FriendID: "933372"})); err != nil {
		t.Fatalf("SelectFriend failed: %v", err)
	}
	resp, err := client.SplitBill(ctx, connect.NewRequest(&api.SplitBillRequest{Value: math.MaxInt64}))
	if err != nil {
		t.Fatalf("SplitBill failed: %v", err)
	}
	if resp.Msg.Applied {
		t.Error("expected overflowing SplitBill to be ignored")
	}
	sarah := resp.Msg.View.Friends[1]
	if sarah.Balance != 2000 || sarah.Status != models.StatusOwed {
		t.Errorf("Sarah changed: balance %d, status %s", sarah.Balance, sarah.Status)
	}
}

func TestEndSession(t *testing.T) {
	env := setupTestServer(t)
	client, _ := newSession(t, env)
	ctx := context.Background()

	if _, err := client.EndSession(ctx, connect.NewRequest(&api.EndSessionRequest{})); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	_, err := client.GetView(ctx, connect.NewRequest(&api.GetViewRequest{}))
	if code := connect.CodeOf(err); code != connect.CodeNotFound {
		t.Errorf("expected CodeNotFound after EndSession, got %v", code)
	}
	if got := testutil.ToFloat64(env.metrics.Sessions); got != 0 {
		t.Errorf("sessions gauge = %v, want 0", got)
	}
}
