package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/scottlepp/gen/internal/blob"
	"github.com/scottlepp/gen/internal/brain"
	"github.com/scottlepp/gen/internal/core/domain"
	"github.com/scottlepp/gen/internal/core/ports"
	"github.com/scottlepp/gen/internal/engine"
	"github.com/scottlepp/gen/internal/storage"
	"github.com/scottlepp/gen/internal/ui/telegram"
)

const usage = `usage: fitgen <workflow>

workflows:
  profile   create one generated profile (with avatar)
  post      create one exercise post (with image)
  comment   comment on a recent post
  reply     reply to a fresh comment as the post owner
  like      like a recent post
  follow    create follow edges between similar profiles

Each invocation runs a single batch pass and exits; scheduling is external.`

func main() {
	godotenv.Load()

	logger := newLogger()
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	workflow := strings.ToLower(os.Args[1])

	if err := run(context.Background(), logger, workflow); err != nil {
		if errors.Is(err, domain.ErrNoEligibleCandidate) || errors.Is(err, domain.ErrDailyPostLimit) {
			logger.Info("nothing to do", "workflow", workflow, "reason", err)
			return
		}
		logger.Error("run failed", "workflow", workflow, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, workflow string) error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	store, err := storage.NewPostgresStore(ctx, connStr)
	if err != nil {
		return err
	}
	defer store.Close()

	gemini, err := brain.NewGeminiBrain(ctx, os.Getenv("GOOGLE_API_KEY"))
	if err != nil {
		return err
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if notifier := newNotifier(logger); notifier != nil {
		opts = append(opts, engine.WithNotifier(notifier))
	}

	// Only image-bearing workflows touch the blob store; the others run
	// without MinIO configured.
	var blobStore ports.BlobStore
	if workflow == "post" || workflow == "profile" {
		cfg, err := blob.FromEnv()
		if err != nil {
			return err
		}
		blobStore, err = blob.NewMinIOStore(ctx, cfg)
		if err != nil {
			return err
		}
	}

	eng := engine.New(store, gemini, blobStore, opts...)

	switch workflow {
	case "profile":
		return eng.RunProfile(ctx)
	case "post":
		return eng.RunPost(ctx)
	case "comment":
		return eng.RunComment(ctx)
	case "reply":
		return eng.RunReply(ctx)
	case "like":
		return eng.RunLike(ctx)
	case "follow":
		return eng.RunFollow(ctx)
	default:
		return fmt.Errorf("unknown workflow %q", workflow)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newNotifier(logger *slog.Logger) ports.Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatID == "" {
		return nil
	}
	notifier, err := telegram.NewNotifier(token, chatID)
	if err != nil {
		logger.Warn("telegram notifier disabled", "error", err)
		return nil
	}
	return notifier
}
