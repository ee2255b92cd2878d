package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/storeops/storefront-backend/pkg/config"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "cart_session",
		CookieTTL:  720 * time.Hour,
	}
}

func TestSessionMintsCookieForNewVisitor(t *testing.T) {
	mw := Session(sessionConfig(), nil)
	var seenSession string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSession = SessionIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/carts", nil)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if seenSession == "" {
		t.Fatal("expected session id in context")
	}
	if err := uuid.Validate(seenSession); err != nil {
		t.Fatalf("expected uuid session id, got %q", seenSession)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "cart_session" {
		t.Fatalf("unexpected cookie name %q", cookie.Name)
	}
	if cookie.Value != seenSession {
		t.Fatalf("cookie %q does not match context session %q", cookie.Value, seenSession)
	}
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
}

func TestSessionReusesExistingCookie(t *testing.T) {
	mw := Session(sessionConfig(), nil)
	existing := uuid.NewString()
	var seenSession string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSession = SessionIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/carts", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: existing})
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if seenSession != existing {
		t.Fatalf("expected session %q, got %q", existing, seenSession)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for returning visitor")
	}
}

func TestSessionReplacesMalformedCookie(t *testing.T) {
	mw := Session(sessionConfig(), nil)
	var seenSession string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSession = SessionIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/carts", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "not-a-uuid"})
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if seenSession == "not-a-uuid" {
		t.Fatal("expected malformed session to be replaced")
	}
	if err := uuid.Validate(seenSession); err != nil {
		t.Fatalf("expected uuid session id, got %q", seenSession)
	}
	if len(resp.Result().Cookies()) != 1 {
		t.Fatal("expected replacement cookie")
	}
}
