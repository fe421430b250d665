package controller

import (
	"net/http"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type FavoritesList struct {
	Lister datasources.FavoritesLister
}

type JokesListResponse struct {
	Data []domain.JokeView `json:"data"`
}

func (c FavoritesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	favorites, err := c.Lister.ListUserFavorites(ctx, domain.UserIDFromContext(ctx))
	if err != nil {
		logger.ErrorContext(ctx, "unable to list favorites", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if favorites == nil {
		favorites = []domain.JokeView{}
	}

	writeJSON(ctx, w, http.StatusOK, JokesListResponse{Data: favorites})
}
