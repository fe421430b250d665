package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/feeds"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200

	feedTitleRunes = 60
)

type RSS struct {
	FeedHostname    string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	Lister          datasources.LatestJokesLister
	CacheMaxAge     time.Duration
}

func (c RSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	feed := &feeds.Feed{
		Title:       "Joke Feed",
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: "Feed of newly approved jokes",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     time.Now(),
	}

	limit, err := feedLimitFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse feed limit in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	jokes, err := c.Lister.ListLatestApprovedJokes(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch jokes for feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for _, j := range jokes {
		id := strconv.FormatInt(j.ID, 10)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          id,
			IsPermaLink: "false",
			Title:       feedTitle(j.Text),
			Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath + "#" + id},
			Description: j.Text,
			Created:     j.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

func feedLimitFromQuery(q url.Values) (int, error) {
	if !q.Has("limit") {
		return defaultFeedLimit, nil
	}

	limit, err := strconv.ParseInt(q.Get("limit"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unable to parse limit from query: %w", err)
	}
	if limit < 1 {
		return 0, fmt.Errorf("invalid limit value [%d]", limit)
	}
	if limit > maxFeedLimit {
		return 0, fmt.Errorf("limit [%d] exceeds maximum [%d]", limit, maxFeedLimit)
	}

	return int(limit), nil
}

// feedTitle shortens a joke to its opening words.
func feedTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= feedTitleRunes {
		return text
	}
	return string(runes[:feedTitleRunes]) + "…"
}
