package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmynk/friendsplit/pkg/api"
)

func TestCORS(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name       string
		method     string
		wantStatus int
		wantCalled bool
	}{
		{"preflight", http.MethodOptions, http.StatusOK, false},
		{"post", http.MethodPost, http.StatusTeapot, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if called != tt.wantCalled {
				t.Errorf("expected handler called=%v, got %v", tt.wantCalled, called)
			}
			if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, api.SessionHeader) {
				t.Errorf("expected allowed headers to contain %s, got %q", api.SessionHeader, got)
			}
		})
	}
}

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()
	if got := GetSessionID(ctx); got != "" {
		t.Errorf("expected empty session ID, got %q", got)
	}
	if got := GetSessionID(WithSessionID(ctx, "s1")); got != "s1" {
		t.Errorf("expected s1, got %q", got)
	}
}
