// Package web renders sessions as server-side HTML and decodes form posts
// into billsplit events.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/models"
	"github.com/mmynk/friendsplit/internal/service"
	"github.com/mmynk/friendsplit/internal/storage"
)

// SessionCookie names the cookie carrying the browser's session ID.
const SessionCookie = "friendsplit_session"

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the HTML renderer.
type Handler struct {
	sessions *service.Sessions
	tmpl     *template.Template
}

// NewHandler parses the embedded templates.
func NewHandler(sessions *service.Sessions) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Handler{sessions: sessions, tmpl: tmpl}, nil
}

// Register adds the renderer's routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /toggle", h.toggle)
	mux.HandleFunc("POST /friends", h.addFriend)
	mux.HandleFunc("POST /friends/{id}/select", h.selectFriend)
	mux.HandleFunc("POST /split", h.split)
}

// session returns the caller's session, starting a new one when the cookie
// is missing or stale.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*storage.Session, error) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		sess, err := h.sessions.Get(r.Context(), c.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, storage.ErrSessionNotFound) {
			return nil, err
		}
	}

	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		return nil, err
	}
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl := h.sessions.TTL(); ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}
	http.SetCookie(w, cookie)
	return sess, nil
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		slog.Error("Failed to load session", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", h.sessions.View(sess)); err != nil {
		slog.Error("Failed to render view", "session_id", sess.ID, "error", err)
	}
}

// dispatch applies events to the caller's session and redirects back to
// the index (post/redirect/get).
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, events ...billsplit.Event) {
	sess, err := h.session(w, r)
	if err != nil {
		slog.Error("Failed to load session", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	_, applied, err := h.sessions.Dispatch(r.Context(), sess.ID, events...)
	if err != nil {
		slog.Error("Dispatch failed", "session_id", sess.ID, "error", err)
		http.Error(w, "transition failed", http.StatusInternalServerError)
		return
	}
	slog.Debug("Form handled", "session_id", sess.ID, "path", r.URL.Path, "applied", applied)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, billsplit.ToggleAddFriendPanel{})
}

func (h *Handler) addFriend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	h.dispatch(w, r,
		billsplit.EditFriendName{Value: r.PostFormValue("name")},
		billsplit.EditFriendImage{Value: r.PostFormValue("image")},
		billsplit.SubmitAddFriend{},
	)
}

func (h *Handler) selectFriend(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, billsplit.SelectFriend{ID: r.PathValue("id")})
}

func (h *Handler) split(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	payer, err := models.ParsePayer(r.PostFormValue("payer"))
	if err != nil {
		payer = models.PayerUser
	}
	h.dispatch(w, r,
		billsplit.EditBill{Raw: r.PostFormValue("bill")},
		billsplit.EditPaidByUser{Raw: r.PostFormValue("paid")},
		billsplit.ChoosePayer{Payer: payer},
		billsplit.SubmitSplit{},
	)
}
