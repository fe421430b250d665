package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/jbeshir/joke-feed/internal/app"
	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

const usage = `usage: moderate [-limit n] list
       moderate approve <joke_id>...
       moderate reject <joke_id>...`

func main() {
	ctx := context.Background()

	logLevel := slog.LevelInfo
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := logLevel.UnmarshalText([]byte(lvl)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL: %s\n", lvl)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	limit := flag.Int("limit", 20, "number of pending jokes to list")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if err := run(ctx, flag.Args(), *limit); err != nil {
		logger.ErrorContext(ctx, "moderation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, limit int) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("no action given")
	}

	dataset, err := app.SetupDatasetRepository(ctx)
	if err != nil {
		return fmt.Errorf("setting up dataset repository: %w", err)
	}
	defer func() { _ = dataset.Close() }()

	action, ids := args[0], args[1:]
	switch action {
	case "list":
		return listPending(ctx, dataset, limit)
	case "approve":
		return setStatus(ctx, command.NewModerateJoke(dataset), ids, domain.JokeStatusApproved)
	case "reject":
		return setStatus(ctx, command.NewModerateJoke(dataset), ids, domain.JokeStatusRejected)
	default:
		flag.Usage()
		return fmt.Errorf("unknown action [%s]", action)
	}
}

type pendingStore interface {
	datasources.PendingJokesCounter
	datasources.PendingJokesLister
}

func listPending(ctx context.Context, store pendingStore, limit int) error {
	total, err := store.CountPendingJokes(ctx)
	if err != nil {
		return fmt.Errorf("counting pending jokes: %w", err)
	}

	jokes, err := store.ListPendingJokes(ctx, limit)
	if err != nil {
		return fmt.Errorf("listing pending jokes: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "ID\tSUBMITTED\tTEXT\n")
	for _, j := range jokes {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", j.ID, j.CreatedAt.Format("2006-01-02 15:04"), j.Text)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("%d of %d pending jokes shown\n", len(jokes), total)
	return nil
}

func setStatus(
	ctx context.Context,
	cmd command.Command[command.ModerateJokeRequest, command.Empty],
	rawIDs []string,
	status domain.JokeStatus,
) error {
	if len(rawIDs) == 0 {
		return errors.New("no joke IDs given")
	}

	logger := domain.LoggerFromContext(ctx)
	var failed int
	for _, raw := range rawIDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			logger.ErrorContext(ctx, "invalid joke ID", "joke_id", raw)
			failed++
			continue
		}

		if _, err := cmd.Execute(ctx, command.ModerateJokeRequest{JokeID: id, Status: status}); err != nil {
			logger.ErrorContext(ctx, "unable to moderate joke", "joke_id", id, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d jokes not moderated", failed, len(rawIDs))
	}
	return nil
}
