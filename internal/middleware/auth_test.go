package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbeaulieu/courses/internal/auth"
	"github.com/mbeaulieu/courses/internal/session"
	"github.com/mbeaulieu/courses/internal/store"
)

func setupRegistry(t *testing.T) *session.Registry {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return session.NewRegistry(store.NewMemory(), store.ModeEphemeral, nil, nil, logger)
}

func TestRequireSessionNoCredentials(t *testing.T) {
	reg := setupRegistry(t)

	handler := RequireSession(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSessionInvalidToken(t *testing.T) {
	reg := setupRegistry(t)

	handler := RequireSession(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "invalid-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSessionCookie(t *testing.T) {
	reg := setupRegistry(t)
	sess, err := reg.Login(context.Background(), "lulu", "Misty123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	var gotAC auth.AuthContext
	handler := RequireSession(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := auth.FromContext(r.Context())
		if !ok {
			t.Fatal("expected AuthContext in request context")
		}
		gotAC = ac
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.Token()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotAC.UserID != "lulu" {
		t.Errorf("UserID = %q, want lulu", gotAC.UserID)
	}
	if gotAC.Token != sess.Token() {
		t.Error("token should round-trip through the context")
	}
}

func TestRequireSessionBearerToken(t *testing.T) {
	reg := setupRegistry(t)
	sess, err := reg.Login(context.Background(), "admin", "Misty123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	handler := RequireSession(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			t.Error("expected admin context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireSessionAfterLogout(t *testing.T) {
	reg := setupRegistry(t)
	sess, err := reg.Login(context.Background(), "lulu", "Misty123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	reg.Logout(sess.Token())

	handler := RequireSession(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
