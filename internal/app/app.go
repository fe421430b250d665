package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources/breaker"
	"github.com/jbeshir/joke-feed/internal/datasources/keywords"
	"github.com/jbeshir/joke-feed/internal/datasources/sqlstore"
	"github.com/jbeshir/joke-feed/internal/domain"
	"github.com/jbeshir/joke-feed/internal/transport/web/router"
	"github.com/jbeshir/joke-feed/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	dataset, err := SetupDatasetRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up dataset repository: %w", err)
	}

	themes := DefaultThemes()
	if err := dataset.EnsureSchema(ctx, sqlstore.Seed{
		Themes: themes,
		Jokes:  DefaultStarterJokes(),
	}); err != nil {
		return nil, fmt.Errorf("ensuring database schema: %w", err)
	}

	engineStore := breaker.New(dataset, DefaultBreakerConfig())
	classifier := keywords.New(DefaultKeywordRules(), MiscThemeID)

	registerUserCmd := command.NewRegisterUser(dataset)

	updatePreferenceCmd := command.NewUpdatePreference(
		engineStore,
		engineStore,
		engineStore,
		DefaultUpdatePreferenceConfig(),
	)

	commands := router.Commands{
		RecommendJoke: command.NewRecommendJoke(
			engineStore,
			domain.NewViewHistory(domain.DefaultViewHistoryCapacity),
			DefaultRecommendJokeConfig(len(themes)),
		),
		RecordFeedback: command.NewRecordFeedback(engineStore, updatePreferenceCmd),
		GetUserProfile: command.NewGetUserProfile(engineStore),
		ToggleFavorite: command.NewToggleFavorite(dataset),
		SubmitJoke:     command.NewSubmitJoke(classifier, dataset, DefaultSubmitJokeConfig()),
	}

	authMiddleware, err := setupAuthMiddleware(ctx, registerUserCmd)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	httpRouter, err := router.MakeRouter(
		dataset,
		commands,
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		MustGetEnvAsDuration(ctx, "RSS_FEED_CACHE_MAX_AGE"),
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		&server.Server{
			TLSDisabled:       MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES"),
			Router:            httpRouter,
		},
	}, nil
}

// SetupDatasetRepository connects to the database named by DB_DRIVER and DB_DSN.
// The schema is left untouched.
func SetupDatasetRepository(ctx context.Context) (*sqlstore.Repository, error) {
	driver := sqlstore.Driver(MustGetEnvAsString(ctx, "DB_DRIVER"))

	db, err := sqlstore.Connect(ctx, driver, MustGetEnvAsString(ctx, "DB_DSN"))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", driver, err)
	}

	repo, err := sqlstore.New(db, driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func setupAuthMiddleware(
	ctx context.Context,
	registerUser command.Command[command.RegisterUserRequest, domain.User],
) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range MustGetEnvAsStrings(ctx, "AUTH_DRIVERS") {
		switch driver {
		case "jwt":
			v, err := router.NewJWTValidator(
				MustGetEnvAsString(ctx, "AUTH_JWT_SECRET"),
				MustGetEnvAsString(ctx, "AUTH_JWT_ISSUER"),
				MustGetEnvAsString(ctx, "AUTH_JWT_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating JWT validator: %w", err)
			}
			validators = append(validators, v)
		case "header":
			validators = append(validators, router.NewHeaderValidator())
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators, registerUser), nil
}
