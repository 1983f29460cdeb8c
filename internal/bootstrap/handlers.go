package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"github.com/checkmate-app/checkmate/internal/auth"
	"github.com/checkmate-app/checkmate/internal/health"
	"github.com/checkmate-app/checkmate/internal/mailer"
	"github.com/checkmate-app/checkmate/internal/note"
	"github.com/checkmate-app/checkmate/internal/quote"
	"github.com/checkmate-app/checkmate/internal/settings"
	"github.com/checkmate-app/checkmate/internal/shared"
	"github.com/checkmate-app/checkmate/internal/task"
	"github.com/checkmate-app/checkmate/internal/user"
	"github.com/labstack/echo/v4"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type noopEmbeddingService struct{}

func (n *noopEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, 384), nil
}

func ProvideEmbeddingService() note.EmbeddingService {
	return &noopEmbeddingService{}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideSessionManager(cfg *Config) *user.SessionManager {
	return user.NewSessionManager(cfg.HMACKey, cfg.CookieSecure, cfg.CookieDomain)
}

func ProvideJWTValidator(cfg *Config) *auth.JWTValidator {
	return auth.NewJWTValidator(cfg.HMACKey)
}

func ProvideVerifier(store *user.Store) *user.Verifier {
	return user.NewVerifier(store)
}

func ProvideAvatarFetcher() user.AvatarFetcher {
	return user.NewHTTPAvatarFetcher(nil)
}

func ProvideLinker(store *user.Store, avatars user.AvatarFetcher, logger *slog.Logger) *user.Linker {
	return user.NewLinker(store, avatars, logger.With("component", "linker"))
}

func ProvideEnricher(store *user.Store) *user.Enricher {
	return user.NewEnricher(store)
}

func ProvideAuthMiddleware(sessions *user.SessionManager, validator *auth.JWTValidator, enricher *user.Enricher) *auth.Middleware {
	return auth.NewMiddleware(sessions, validator, enricher)
}

func ProvideLoginThrottle(redisClient *redis.Client) *user.LoginThrottle {
	return user.NewLoginThrottle(redisClient)
}

func ProvideMailer(cfg *Config, logger *slog.Logger) mailer.Mailer {
	if cfg.ResendAPIKey == "" {
		return mailer.NewNoopMailer(logger.With("component", "mailer"))
	}
	return mailer.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom, cfg.AppName, logger.With("component", "mailer"))
}

func ProvideProviders(cfg *Config) map[shared.Provider]user.Provider {
	providers := map[shared.Provider]user.Provider{}
	if cfg.GitHubClientID != "" {
		providers[shared.ProviderGitHub] = user.NewGitHubProvider(
			cfg.GitHubClientID,
			cfg.GitHubClientSecret,
			cfg.GitHubRedirectURL,
		)
	}
	return providers
}

func ProvideUserHandler(
	store *user.Store,
	verifier *user.Verifier,
	linker *user.Linker,
	providers map[shared.Provider]user.Provider,
	sessions *user.SessionManager,
	throttle *user.LoginThrottle,
	mail mailer.Mailer,
	cfg *Config,
	logger *slog.Logger,
) *user.Handler {
	return user.NewHandler(store, verifier, linker, providers, sessions, throttle, mail,
		cfg.BaseURL, cfg.FrontendURL, logger.With("handler", "user"))
}

func ProvideProfileHandler(store *user.Store) *user.ProfileHandler {
	return user.NewProfileHandler(store)
}

func ProvideTaskHandler(store *task.Store, logger *slog.Logger) *task.Handler {
	return task.NewHandler(store, logger.With("handler", "task"))
}

func ProvideNoteHandler(store *note.Store, embeddings note.EmbeddingService, logger *slog.Logger) *note.Handler {
	return note.NewHandler(store, embeddings, logger.With("handler", "note"))
}

func ProvideSettingsHandler(store *settings.Store, logger *slog.Logger) *settings.Handler {
	return settings.NewHandler(store, logger.With("handler", "settings"))
}

func ProvideQuoteService(redisClient *redis.Client, cfg *Config, logger *slog.Logger) *quote.Service {
	return quote.NewService(redisClient, cfg.QuoteAPIKey, logger.With("component", "quote"))
}

func ProvideQuoteHandler(service *quote.Service, logger *slog.Logger) *quote.Handler {
	return quote.NewHandler(service, logger.With("handler", "quote"))
}

func ProvideHealthHandler(db *gorm.DB, redisClient *redis.Client, qdrantClient *qdrant.Client, cfg *Config) *health.Handler {
	return health.NewHandler(db, redisClient, qdrantClient, cfg.Version)
}

type HandlerParams struct {
	fx.In

	UserHandler     *user.Handler
	ProfileHandler  *user.ProfileHandler
	TaskHandler     *task.Handler
	NoteHandler     *note.Handler
	SettingsHandler *settings.Handler
	QuoteHandler    *quote.Handler
	HealthHandler   *health.Handler
	AuthMiddleware  *auth.Middleware
	Config          *Config
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	e.Validator = shared.NewRequestValidator()

	api := e.Group("/v1")
	gate := params.AuthMiddleware.Authenticate

	authGroup := api.Group("/auth")
	gatedAuth := api.Group("/auth")
	gatedAuth.Use(gate)
	params.UserHandler.RegisterRoutes(authGroup, gatedAuth)

	profileGroup := api.Group("/profile")
	profileGroup.Use(gate)
	params.ProfileHandler.RegisterRoutes(profileGroup)

	tasksGroup := api.Group("/tasks")
	tasksGroup.Use(gate)
	taskFoldersGroup := api.Group("/folders")
	taskFoldersGroup.Use(gate)
	params.TaskHandler.RegisterRoutes(tasksGroup, taskFoldersGroup)

	notesGroup := api.Group("/notes")
	notesGroup.Use(gate)
	noteFoldersGroup := api.Group("/notes-folders")
	noteFoldersGroup.Use(gate)
	tagsGroup := api.Group("/tags")
	tagsGroup.Use(gate)
	params.NoteHandler.RegisterRoutes(notesGroup, noteFoldersGroup, tagsGroup)

	settingsGroup := api.Group("/settings")
	settingsGroup.Use(gate)
	params.SettingsHandler.RegisterRoutes(settingsGroup)

	params.QuoteHandler.RegisterRoutes(api.Group("/quotes"))

	params.HealthHandler.RegisterRoutes(e)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideSessionManager,
		ProvideJWTValidator,
		ProvideVerifier,
		ProvideAvatarFetcher,
		ProvideLinker,
		ProvideEnricher,
		ProvideAuthMiddleware,
		ProvideLoginThrottle,
		ProvideMailer,
		ProvideProviders,
		ProvideEmbeddingService,
		ProvideUserHandler,
		ProvideProfileHandler,
		ProvideTaskHandler,
		ProvideNoteHandler,
		ProvideSettingsHandler,
		ProvideQuoteService,
		ProvideQuoteHandler,
		ProvideHealthHandler,
	),
	fx.Invoke(RegisterRoutes),
)
