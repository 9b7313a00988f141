package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("testsecret"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestSubjectFromHeader(t *testing.T) {
	if got := SubjectFromHeader("Bearer " + signed(t, jwt.MapClaims{"email": "owner@trees.test", "sub": "123"})); got != "owner@trees.test" {
		t.Fatalf("email subject = %q", got)
	}
	if got := SubjectFromHeader("Bearer " + signed(t, jwt.MapClaims{"sub": "123"})); got != "123" {
		t.Fatalf("sub subject = %q", got)
	}

	a := SubjectFromHeader("Bearer opaque-session")
	b := SubjectFromHeader("opaque-session")
	if a == "" || a != b || a == "opaque-session" {
		t.Fatalf("opaque subjects %q %q", a, b)
	}
	if SubjectFromHeader("bearer opaque-session") != a {
		t.Fatal("scheme should match case-insensitively")
	}
	for _, h := range []string{"", "Bearer ", "  Bearer  ", "bearer", "Bearer a b"} {
		if got := SubjectFromHeader(h); got != "" {
			t.Fatalf("header %q: subject = %q, want none", h, got)
		}
	}
}

func TestMiddleware(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen Session
	h := Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/events", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/dashboard/events", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"sub": "admin-1"}))
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if seen.Subject != "admin-1" || seen.Header == "" || seen.ActionKey == "" {
		t.Fatalf("session = %+v", seen)
	}

	for _, header := range []string{"Bearer ", "Bearer"} {
		seen = Session{}
		req = httptest.NewRequest(http.MethodGet, "/dashboard/events", nil)
		req.Header.Set("Authorization", header)
		resp = httptest.NewRecorder()
		h.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.Code)
		}
		if seen.Subject != "" {
			t.Fatalf("header %q reached the handler as %q", header, seen.Subject)
		}
	}
}

func TestMiddlewareKeepsClientActionKey(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen Session
	h := Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/dashboard/bookings/move", nil)
	req.Header.Set("Authorization", "Bearer opaque-session")
	req.Header.Set("Idempotency-Key", "move-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen.ActionKey != "move-42" {
		t.Fatalf("action key = %q", seen.ActionKey)
	}
}

func TestSubjectDefault(t *testing.T) {
	if got := Subject(context.Background()); got != "anonymous" {
		t.Fatalf("subject = %q", got)
	}
}
