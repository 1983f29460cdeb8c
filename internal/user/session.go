package user

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "checkmate_session"
	csrfCookieName    = "checkmate_csrf"
	stateCookieName   = "oauth_state"
	sessionMaxAge     = 7 * 24 * 60 * 60
)

// Intent distinguishes an OAuth handshake started to sign in from one
// started to connect an additional provider to the current account. It
// rides inside the signed state so it cannot be forged or inferred from
// headers.
type Intent string

const (
	IntentSignIn  Intent = "signin"
	IntentConnect Intent = "connect"
)

// SessionManager issues and verifies HMAC-signed cookie sessions plus the
// signed OAuth state. It is constructed once at startup from explicit
// configuration; there is no ambient global.
type SessionManager struct {
	hmacKey []byte
	secure  bool
	domain  string
}

func NewSessionManager(hmacKey []byte, secure bool, domain string) *SessionManager {
	return &SessionManager{
		hmacKey: hmacKey,
		secure:  secure,
		domain:  domain,
	}
}

// Get extracts the minimal session stub (user id, email claim, csrf) from
// the request cookie.
func (s *SessionManager) Get(c echo.Context) (userID, email, csrf string, err error) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return "", "", "", err
	}

	payload, err := s.VerifyValue(cookie.Value)
	if err != nil {
		return "", "", "", err
	}

	parts := strings.SplitN(payload, "|", 3)
	if len(parts) != 3 {
		return "", "", "", errors.New("invalid session format")
	}

	return parts[0], parts[1], parts[2], nil
}

func (s *SessionManager) Create(c echo.Context, userID, email string) {
	csrf := s.generateNonce(32)
	payload := userID + "|" + email + "|" + csrf
	signed := s.SignValue(payload)

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	c.SetCookie(&http.Cookie{
		Name:     csrfCookieName,
		Value:    csrf,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   sessionMaxAge,
		HttpOnly: false,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	c.SetCookie(&http.Cookie{
		Name:     csrfCookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   -1,
		HttpOnly: false,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionManager) SignValue(value string) string {
	mac := hmac.New(sha256.New, s.hmacKey)
	mac.Write([]byte(value))
	sig := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(value)) + "." + sig
}

func (s *SessionManager) VerifyValue(signed string) (string, error) {
	parts := strings.SplitN(signed, ".", 2)
	if len(parts) != 2 {
		return "", errors.New("invalid signature format")
	}

	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, s.hmacKey)
	mac.Write(payload)
	expectedSig := base64.URLEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(parts[1]), []byte(expectedSig)) {
		return "", errors.New("invalid signature")
	}

	return string(payload), nil
}

func (s *SessionManager) RequireCSRF(c echo.Context, sessionCSRF string) error {
	header := c.Request().Header.Get("X-CSRF-Token")
	if header == "" {
		return echo.NewHTTPError(http.StatusForbidden, "missing csrf token")
	}

	csrfCookie, err := c.Cookie(csrfCookieName)
	if err != nil || csrfCookie.Value == "" {
		return echo.NewHTTPError(http.StatusForbidden, "missing csrf cookie")
	}

	if csrfCookie.Value != header || sessionCSRF != header {
		return echo.NewHTTPError(http.StatusForbidden, "invalid csrf token")
	}

	return nil
}

// GenerateOAuthState packs a nonce, the caller's intent and an optional
// post-login redirect into a signed opaque value.
func (s *SessionManager) GenerateOAuthState(intent Intent, redirectURI string) string {
	state := s.generateNonce(16) + "|" + string(intent) + "|" + redirectURI
	return s.SignValue(state)
}

// ParseOAuthState verifies the state signature and unpacks intent and
// redirect. Any tampering fails verification.
func (s *SessionManager) ParseOAuthState(state string) (Intent, string, error) {
	payload, err := s.VerifyValue(state)
	if err != nil {
		return "", "", err
	}

	parts := strings.SplitN(payload, "|", 3)
	if len(parts) != 3 {
		return "", "", errors.New("invalid state format")
	}

	intent := Intent(parts[1])
	if intent != IntentSignIn && intent != IntentConnect {
		return "", "", errors.New("unknown oauth intent")
	}

	return intent, parts[2], nil
}

func (s *SessionManager) generateNonce(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return base64.URLEncoding.EncodeToString(b)
}
