package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/checkmate-app/checkmate/internal/dto"
	"github.com/labstack/echo/v4"
)

type stubSessionReader struct {
	userID string
	email  string
	err    error
}

func (r *stubSessionReader) Get(c echo.Context) (string, string, string, error) {
	if r.err != nil {
		return "", "", "", r.err
	}
	return r.userID, r.email, "csrf", nil
}

type stubEnricher struct {
	sessions map[string]*dto.Session
	err      error
}

func (e *stubEnricher) Enrich(ctx context.Context, stub *dto.Session) (*dto.Session, error) {
	if e.err != nil {
		return nil, e.err
	}
	if full, ok := e.sessions[stub.Email]; ok {
		return full, nil
	}
	gone := *stub
	gone.ID = ""
	return &gone, nil
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func newMiddlewareContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestMiddleware_Authenticate_CookieSession(t *testing.T) {
	reader := &stubSessionReader{userID: "user_1", email: "a@example.com"}
	enricher := &stubEnricher{sessions: map[string]*dto.Session{
		"a@example.com": {ID: "user_1", Email: "a@example.com", Username: "a_user", HasPassword: true},
	}}
	m := NewMiddleware(reader, nil, enricher)

	c, rec := newMiddlewareContext()
	var captured *dto.Session
	err := m.Authenticate(func(c echo.Context) error {
		captured = GetSession(c)
		return okHandler(c)
	})(c)

	if err != nil {
		t.Fatalf("Authenticate error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if captured == nil || captured.Username != "a_user" {
		t.Error("enriched session should reach the handler")
	}
}

func TestMiddleware_Authenticate_NoCredentials(t *testing.T) {
	m := NewMiddleware(&stubSessionReader{err: http.ErrNoCookie}, nil, &stubEnricher{})

	c, _ := newMiddlewareContext()
	err := m.Authenticate(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_Authenticate_BearerFallback(t *testing.T) {
	validator := NewJWTValidator([]byte("test-key"))
	token, _ := validator.Issue("user_2", "b@example.com", time.Hour)

	enricher := &stubEnricher{sessions: map[string]*dto.Session{
		"b@example.com": {ID: "user_2", Email: "b@example.com"},
	}}
	m := NewMiddleware(&stubSessionReader{err: http.ErrNoCookie}, validator, enricher)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := m.Authenticate(okHandler)(c); err != nil {
		t.Fatalf("bearer auth failed: %v", err)
	}
	if sess := GetSession(c); sess == nil || sess.ID != "user_2" {
		t.Error("bearer identity should be set on the context")
	}
}

func TestMiddleware_Authenticate_EnricherFailureFailsClosed(t *testing.T) {
	reader := &stubSessionReader{userID: "user_1", email: "a@example.com"}
	m := NewMiddleware(reader, nil, &stubEnricher{err: errors.New("store down")})

	c, _ := newMiddlewareContext()
	err := m.Authenticate(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("store outage must not admit the request, got %v", err)
	}
}

func TestMiddleware_Authenticate_DeletedUser(t *testing.T) {
	// Valid cookie whose backing user is gone: the enricher clears the ID,
	// so the session no longer counts as resolved.
	reader := &stubSessionReader{userID: "user_ghost", email: "gone@example.com"}
	m := NewMiddleware(reader, nil, &stubEnricher{})

	c, _ := newMiddlewareContext()
	err := m.Authenticate(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unresolvable session, got %v", err)
	}
}

func TestMiddleware_OptionalAuthenticate(t *testing.T) {
	t.Run("anonymous passes", func(t *testing.T) {
		m := NewMiddleware(&stubSessionReader{err: http.ErrNoCookie}, nil, &stubEnricher{})
		c, rec := newMiddlewareContext()
		if err := m.OptionalAuthenticate(okHandler)(c); err != nil {
			t.Fatalf("anonymous request should pass: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
		if GetSession(c) != nil {
			t.Error("no session should be set for anonymous requests")
		}
	})

	t.Run("authenticated gets session", func(t *testing.T) {
		reader := &stubSessionReader{userID: "user_1", email: "a@example.com"}
		enricher := &stubEnricher{sessions: map[string]*dto.Session{
			"a@example.com": {ID: "user_1", Email: "a@example.com"},
		}}
		m := NewMiddleware(reader, nil, enricher)
		c, _ := newMiddlewareContext()
		if err := m.OptionalAuthenticate(okHandler)(c); err != nil {
			t.Fatalf("error = %v", err)
		}
		if sess := GetSession(c); sess == nil || sess.ID != "user_1" {
			t.Error("session should be set")
		}
	})
}

func TestRequireSession(t *testing.T) {
	c, _ := newMiddlewareContext()

	if _, err := RequireSession(c); err == nil {
		t.Error("expected error outside the gate")
	}

	SetSessionForTest(c, &dto.Session{ID: "user_9", Email: "x@example.com"})
	userID, err := RequireSession(c)
	if err != nil {
		t.Fatalf("RequireSession() error = %v", err)
	}
	if userID != "user_9" {
		t.Errorf("userID = %q", userID)
	}
}
