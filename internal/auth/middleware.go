package auth

import (
	"context"

	"github.com/checkmate-app/checkmate/internal/dto"
	"github.com/checkmate-app/checkmate/internal/shared"
	"github.com/labstack/echo/v4"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionReader extracts the minimal session stub from a request cookie.
// Implemented by user.SessionManager.
type SessionReader interface {
	Get(c echo.Context) (userID, email, csrf string, err error)
}

// SessionEnricher re-hydrates the stub into the full display-safe session.
// Implemented by user.Enricher.
type SessionEnricher interface {
	Enrich(ctx context.Context, stub *dto.Session) (*dto.Session, error)
}

// Middleware is the authorization gate: it resolves the request's identity
// (cookie session or bearer token), enriches it from the store, and stashes
// it on the request context. Mutating routes sit behind Authenticate.
type Middleware struct {
	sessions  SessionReader
	validator *JWTValidator
	enricher  SessionEnricher
}

func NewMiddleware(sessions SessionReader, validator *JWTValidator, enricher SessionEnricher) *Middleware {
	return &Middleware{
		sessions:  sessions,
		validator: validator,
		enricher:  enricher,
	}
}

// Authenticate rejects requests without a resolvable session. Enrichment
// failures fail closed: a store outage must not let requests through with
// stale identity.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		stub := m.resolveStub(c)
		if stub == nil {
			return shared.Unauthorized("auth_required", "authentication required")
		}

		sess, err := m.enricher.Enrich(c.Request().Context(), stub)
		if err != nil {
			return shared.InternalError("session_unavailable", "could not resolve session")
		}
		if !sess.Resolved() {
			return shared.Unauthorized("auth_required", "authentication required")
		}

		setSession(c, sess)
		return next(c)
	}
}

// OptionalAuthenticate resolves a session when one is present but lets
// anonymous requests through.
func (m *Middleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		stub := m.resolveStub(c)
		if stub == nil {
			return next(c)
		}

		sess, err := m.enricher.Enrich(c.Request().Context(), stub)
		if err != nil || !sess.Resolved() {
			return next(c)
		}

		setSession(c, sess)
		return next(c)
	}
}

func (m *Middleware) resolveStub(c echo.Context) *dto.Session {
	if userID, email, _, err := m.sessions.Get(c); err == nil {
		return &dto.Session{ID: userID, Email: email}
	}

	if m.validator != nil {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader != "" {
			if claims, err := m.validator.Validate(authHeader); err == nil {
				return &dto.Session{ID: claims.UserID, Email: claims.Email}
			}
		}
	}

	return nil
}

func setSession(c echo.Context, sess *dto.Session) {
	ctx := context.WithValue(c.Request().Context(), sessionKey, sess)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetSession returns the enriched session, or nil outside the gate.
func GetSession(c echo.Context) *dto.Session {
	sess, ok := c.Request().Context().Value(sessionKey).(*dto.Session)
	if !ok {
		return nil
	}
	return sess
}

// RequireSession returns the session's user id or an HTTP 401.
func RequireSession(c echo.Context) (string, error) {
	sess := GetSession(c)
	if !sess.Resolved() {
		return "", shared.Unauthorized("auth_required", "authentication required")
	}
	return sess.ID, nil
}

// SetSessionForTest injects a session into the request context.
func SetSessionForTest(c echo.Context, sess *dto.Session) {
	setSession(c, sess)
}
