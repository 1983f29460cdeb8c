package user

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/checkmate-app/checkmate/internal/auth"
	"github.com/checkmate-app/checkmate/internal/dto"
	"github.com/checkmate-app/checkmate/internal/mailer"
	"github.com/checkmate-app/checkmate/internal/shared"
	"github.com/labstack/echo/v4"
)

const (
	verificationTTL = 24 * time.Hour
	stateCookieTTL  = 10 * time.Minute
)

type Handler struct {
	store     *Store
	verifier  *Verifier
	linker    *Linker
	providers map[shared.Provider]Provider
	sessions  *SessionManager
	throttle  *LoginThrottle
	mail      mailer.Mailer

	baseURL     string
	frontendURL string
	logger      *slog.Logger
}

func NewHandler(
	store *Store,
	verifier *Verifier,
	linker *Linker,
	providers map[shared.Provider]Provider,
	sessions *SessionManager,
	throttle *LoginThrottle,
	mail mailer.Mailer,
	baseURL, frontendURL string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:       store,
		verifier:    verifier,
		linker:      linker,
		providers:   providers,
		sessions:    sessions,
		throttle:    throttle,
		mail:        mail,
		baseURL:     strings.TrimRight(baseURL, "/"),
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
}

// RegisterRoutes wires the public auth surface. Me, password, disconnect and
// logout additionally need the authorization gate, applied by the caller
// through the gated group.
func (h *Handler) RegisterRoutes(g *echo.Group, gated *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/verify", h.VerifyEmail)
	g.GET("/github", h.GitHubLogin)
	g.GET("/github/callback", h.GitHubCallback)

	gated.GET("/me", h.Me)
	gated.POST("/logout", h.Logout)
	gated.POST("/password", h.ChangePassword)
	gated.POST("/disconnect/:platform", h.Disconnect)
}

// @Summary      Register with credentials
// @Description  Creates an account and emails a verification link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "registration payload"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  shared.APIError
// @Failure      409   {object}  shared.APIError
// @Router       /auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hashing failed", "error", err)
		return shared.InternalError("registration_failed", "something went wrong during registration")
	}

	u := &User{
		Email:           req.Email,
		Username:        req.Username,
		Name:            req.Name,
		PasswordHash:    hash,
		PasswordChanges: 1,
		PrimaryProvider: shared.ProviderCredentials,
	}

	if err := h.store.Create(c.Request().Context(), u); err != nil {
		return h.conflictOr500(err, "registration_failed")
	}

	token := shared.NewToken()
	expires := time.Now().Add(verificationTTL)
	if err := h.store.SetVerificationToken(c.Request().Context(), u.ID, token, expires); err != nil {
		h.logger.Error("failed to store verification token", "error", err, "user_id", u.ID)
		return shared.InternalError("registration_failed", "something went wrong during registration")
	}

	verifyURL := h.baseURL + "/v1/auth/verify?token=" + token
	if err := h.mail.SendVerification(c.Request().Context(), u.Email, verifyURL); err != nil {
		h.logger.Error("verification email failed", "error", err, "user_id", u.ID)
		return shared.InternalError("registration_failed", "something went wrong during registration")
	}

	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Registration successful! Please check your email to verify your account.",
	})
}

// @Summary      Sign in with credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "credentials"
// @Success      200   {object}  dto.Session
// @Failure      401   {object}  shared.APIError
// @Failure      403   {object}  shared.APIError
// @Router       /auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if !h.throttle.Allow(ctx, req.Email) {
		return echo.NewHTTPError(http.StatusTooManyRequests,
			shared.NewAPIError("too_many_attempts", "too many login attempts, try again later"))
	}

	u, err := h.verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrEmailNotVerified):
			return shared.Forbidden("email_not_verified", "please verify your email before signing in")
		case errors.Is(err, shared.ErrInvalidCredentials):
			h.throttle.RecordFailure(ctx, req.Email)
			// One generic message regardless of which check failed.
			return shared.Unauthorized("invalid_credentials", "invalid email or password")
		default:
			h.logger.Error("credential verification failed", "error", err)
			return shared.InternalError("login_failed", "could not complete sign-in")
		}
	}

	h.throttle.Reset(ctx, req.Email)
	h.sessions.Create(c, u.ID, u.Email)

	return c.JSON(http.StatusOK, Project(u))
}

// @Summary      Start GitHub OAuth
// @Description  Redirects to GitHub. Intent (signin or connect) travels inside the signed state.
// @Tags         auth
// @Param        intent        query  string  false  "signin (default) or connect"
// @Param        redirect_uri  query  string  false  "where to land after the handshake"
// @Success      307
// @Failure      401  {object}  shared.APIError
// @Router       /auth/github [get]
func (h *Handler) GitHubLogin(c echo.Context) error {
	provider := h.providers[shared.ProviderGitHub]
	if provider == nil {
		return shared.InternalError("oauth_unavailable", "github login is not configured")
	}

	intent := IntentSignIn
	if c.QueryParam("intent") == string(IntentConnect) {
		// Connecting an extra provider only makes sense from a live session.
		if _, _, _, err := h.sessions.Get(c); err != nil {
			return shared.Unauthorized("auth_required", "sign in before connecting a platform")
		}
		intent = IntentConnect
	}

	state := h.sessions.GenerateOAuthState(intent, h.sanitizeRedirectURI(c.QueryParam("redirect_uri")))

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.sessions.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusTemporaryRedirect, provider.AuthURL(state))
}

// @Summary      GitHub OAuth callback
// @Tags         auth
// @Success      307
// @Failure      400  {object}  shared.APIError
// @Router       /auth/github/callback [get]
func (h *Handler) GitHubCallback(c echo.Context) error {
	provider := h.providers[shared.ProviderGitHub]
	if provider == nil {
		return shared.InternalError("oauth_unavailable", "github login is not configured")
	}

	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil {
		return shared.BadRequest("bad_state", "missing oauth state cookie")
	}
	state := c.QueryParam("state")
	if state == "" || state != stateCookie.Value {
		return shared.BadRequest("bad_state", "oauth state mismatch")
	}

	intent, redirectURI, err := h.sessions.ParseOAuthState(state)
	if err != nil {
		return shared.BadRequest("bad_state", "invalid oauth state")
	}

	// State is consumed either way.
	c.SetCookie(&http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	if errParam := c.QueryParam("error"); errParam != "" {
		return h.loginRedirect(c, "oauth_denied")
	}

	code := c.QueryParam("code")
	if code == "" {
		return shared.BadRequest("missing_code", "authorization code is required")
	}

	ctx := c.Request().Context()
	ident, err := provider.Exchange(ctx, code)
	if err != nil {
		h.logger.Error("oauth exchange failed", "error", err)
		return h.loginRedirect(c, "oauth_failed")
	}

	if intent == IntentConnect {
		userID, _, _, err := h.sessions.Get(c)
		if err != nil {
			return h.loginRedirect(c, "session_expired")
		}
		if err := h.linker.Connect(ctx, userID, ident); err != nil {
			h.logger.Error("platform connect failed", "error", err, "user_id", userID)
			return h.loginRedirect(c, "connect_failed")
		}
		return c.Redirect(http.StatusTemporaryRedirect, h.landingURL(redirectURI, "/settings"))
	}

	u, err := h.linker.SignIn(ctx, ident)
	if err != nil {
		h.logger.Error("oauth sign-in failed", "error", err, "provider", ident.Provider)
		return h.loginRedirect(c, "signin_failed")
	}

	h.sessions.Create(c, u.ID, u.Email)
	return c.Redirect(http.StatusTemporaryRedirect, h.landingURL(redirectURI, "/"))
}

// @Summary      Current session
// @Description  Returns the freshly enriched session for the caller
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Session
// @Failure      401  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /auth/me [get]
func (h *Handler) Me(c echo.Context) error {
	sess := auth.GetSession(c)
	if !sess.Resolved() {
		return shared.Unauthorized("auth_required", "authentication required")
	}
	return c.JSON(http.StatusOK, sess)
}

// @Summary      Sign out
// @Tags         auth
// @Success      204  "No Content"
// @Failure      401  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /auth/logout [post]
func (h *Handler) Logout(c echo.Context) error {
	_, _, csrf, err := h.sessions.Get(c)
	if err != nil {
		return shared.Unauthorized("auth_required", "authentication required")
	}
	if err := h.sessions.RequireCSRF(c, csrf); err != nil {
		return err
	}

	h.sessions.Clear(c)
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Set or change password
// @Description  Old password is required unless this is the initial set for an OAuth-only account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PasswordRequest  true  "password payload"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  shared.APIError
// @Failure      401   {object}  shared.APIError
// @Security     SessionAuth
// @Router       /auth/password [post]
func (h *Handler) ChangePassword(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.PasswordRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	u, err := h.store.GetByID(ctx, userID)
	if err != nil {
		return shared.NotFound("user_not_found", "user not found")
	}

	if u.PasswordChanges > 0 && !req.IsInitialSet {
		if req.OldPassword == "" || !CheckPassword(u.PasswordHash, req.OldPassword) {
			return shared.BadRequest("invalid_password", "current password is incorrect")
		}
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("password hashing failed", "error", err)
		return shared.InternalError("password_change_failed", "could not update password")
	}

	if err := h.store.SetPassword(ctx, userID, hash); err != nil {
		h.logger.Error("password update failed", "error", err, "user_id", userID)
		return shared.InternalError("password_change_failed", "could not update password")
	}

	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// @Summary      Disconnect a platform
// @Description  Refused for the primary provider while no password is set
// @Tags         auth
// @Produce      json
// @Param        platform  path      string  true  "provider name"
// @Success      200       {object}  dto.SuccessResponse
// @Failure      404       {object}  shared.APIError
// @Failure      409       {object}  shared.APIError
// @Security     SessionAuth
// @Router       /auth/disconnect/{platform} [post]
func (h *Handler) Disconnect(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	provider := shared.Provider(c.Param("platform"))
	if !provider.Valid() {
		return shared.BadRequest("unknown_platform", "unknown platform")
	}

	if _, err := h.store.RemovePlatform(c.Request().Context(), userID, provider); err != nil {
		switch {
		case errors.Is(err, shared.ErrPrimaryProviderLocked):
			return shared.Conflict("primary_provider_locked",
				"cannot disconnect primary login method without setting a password first")
		case errors.Is(err, shared.ErrNotFound):
			return shared.NotFound("platform_not_connected", "platform is not connected")
		default:
			h.logger.Error("platform disconnect failed", "error", err, "user_id", userID)
			return shared.InternalError("disconnect_failed", "could not disconnect platform")
		}
	}

	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// @Summary      Verify email address
// @Description  Consumes a single-use verification token and redirects to the app
// @Tags         auth
// @Param        token  query  string  true  "verification token"
// @Success      307
// @Router       /auth/verify [get]
func (h *Handler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return h.loginRedirect(c, "missing_token")
	}

	if _, err := h.store.Verify(c.Request().Context(), token); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return h.loginRedirect(c, "invalid_token")
		}
		h.logger.Error("email verification failed", "error", err)
		return h.loginRedirect(c, "verification_failed")
	}

	return c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/?verified=true")
}

func (h *Handler) loginRedirect(c echo.Context, code string) error {
	return c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error="+code)
}

func (h *Handler) landingURL(redirectURI, fallback string) string {
	if redirectURI == "" {
		redirectURI = fallback
	}
	if strings.HasPrefix(redirectURI, "/") {
		return h.frontendURL + redirectURI
	}
	return redirectURI
}

// sanitizeRedirectURI keeps the post-login redirect on our own surface:
// relative paths or URLs under the configured frontend origin.
func (h *Handler) sanitizeRedirectURI(uri string) string {
	if uri == "" {
		return ""
	}

	if strings.HasPrefix(uri, "/") && !strings.HasPrefix(uri, "//") {
		return uri
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	frontend, err := url.Parse(h.frontendURL)
	if err != nil || frontend.Host == "" {
		return ""
	}
	if parsed.Scheme == frontend.Scheme && parsed.Host == frontend.Host {
		return uri
	}

	return ""
}

// conflictOr500 shapes duplicate email/username failures as per-field 409
// details so clients can highlight the offending input.
func (h *Handler) conflictOr500(err error, fallbackCode string) error {
	var conflict *shared.ConflictError
	if errors.As(err, &conflict) {
		return shared.NewAPIError("validation_failed", "validation failed").
			WithDetails(map[string]string{
				conflict.Field: "this " + conflict.Field + " is already taken",
			}).
			ToHTTP(http.StatusConflict)
	}
	h.logger.Error("store operation failed", "error", err)
	return shared.InternalError(fallbackCode, "something went wrong")
}
