package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/transport/web/controller"
)

// Commands groups the commands served over HTTP.
type Commands struct {
	RecommendJoke  *command.RecommendJoke
	RecordFeedback *command.RecordFeedback
	GetUserProfile *command.GetUserProfile
	ToggleFavorite *command.ToggleFavorite
	SubmitJoke     *command.SubmitJoke
}

func MakeRouter(
	dataset datasources.DatasetRepository,
	commands Commands,
	rssFeedBaseURL, rssFeedAuthorName, rssFeedAuthorEmail string,
	latestCacheMaxAge time.Duration,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	rssFeeds := []controller.RSS{
		{
			FeedHostname:    rssFeedBaseURL,
			FeedPath:        "/rss",
			FeedAuthorName:  rssFeedAuthorName,
			FeedAuthorEmail: rssFeedAuthorEmail,
			Lister:          dataset,
			CacheMaxAge:     latestCacheMaxAge,
		},
	}

	for _, feed := range rssFeeds {
		r.Handle(feed.FeedPath, feed).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(authMiddleware)

	api.Handle("/themes", controller.ThemesList{
		Lister:         dataset,
		PendingCounter: dataset,
		CacheMaxAge:    latestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	api.Handle("/stats", controller.EngineStatsGet{
		Stats:          commands.RecommendJoke,
		PendingCounter: dataset,
	}).Methods(http.MethodGet, http.MethodOptions)

	api.Handle("/jokes", requireAuthMiddleware(controller.JokeSubmit{
		Command: commands.SubmitJoke,
	})).Methods(http.MethodPost, http.MethodOptions)

	api.Handle("/jokes/recommended", requireAuthMiddleware(controller.JokeRecommended{
		Command:      commands.RecommendJoke,
		RatedHistory: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	api.Handle("/jokes/{joke_id}/rating/{liked}", requireAuthMiddleware(controller.JokeRatingSet{
		Command: commands.RecordFeedback,
	})).Methods(http.MethodPost, http.MethodOptions)

	api.Handle("/jokes/{joke_id}/favorite", requireAuthMiddleware(controller.JokeFavoriteToggle{
		Command: commands.ToggleFavorite,
	})).Methods(http.MethodPost, http.MethodOptions)

	api.Handle("/favorites", requireAuthMiddleware(controller.FavoritesList{
		Lister: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	api.Handle("/me/jokes", requireAuthMiddleware(controller.UserJokesList{
		Lister: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	api.Handle("/me/profile", requireAuthMiddleware(controller.UserProfileGet{
		Command: commands.GetUserProfile,
	})).Methods(http.MethodGet, http.MethodOptions)

	return r, nil
}
