package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tagbot/pkg"
	"tagbot/pkg/api"
	"tagbot/pkg/commands"
	"tagbot/pkg/config"
	"tagbot/pkg/db"
	"tagbot/pkg/handlers"
	"tagbot/pkg/settings"
	"tagbot/pkg/storage"
	"tagbot/pkg/tags"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/disgo/handler"
	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	err = sentry.Init(sentry.ClientOptions{
		Dsn:           cfg.SentryDSN,
		EnableTracing: false,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if cfg.IsProduction() { // only log events in prod
				return event
			}
			return nil
		},
	})
	if err != nil {
		panic(err)
	}

	defer sentry.Flush(2 * time.Second)

	logger := slog.New(slog.NewMultiHandler(
		tint.NewHandler(os.Stdout, &tint.Options{
			Level: slog.LevelInfo,
		}),
		sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelWarn, slog.LevelError},
		}.NewSentryHandler(context.Background())))
	slog.SetDefault(logger)

	slog.Info("tagbot: starting the bot...", slog.String("disgo.version", disgo.Version))

	tagStore, err := storage.Open(cfg.TagsPath(), cfg.LockTimeout)
	if err != nil {
		panic(err)
	}
	defer closeStore(tagStore)

	settingsStore, err := storage.Open(cfg.SettingsPath(), cfg.LockTimeout)
	if err != nil {
		panic(err)
	}
	defer closeStore(settingsStore)

	b := &pkg.Bot{
		Tags:     tags.NewRepository(tagStore),
		Settings: settings.NewRepository(settingsStore),
	}
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			panic(err)
		}
		defer pool.Close()
		b.Warnings = db.NewDB(pool)
		if err := b.Warnings.Migrate(); err != nil {
			panic(err)
		}
	} else {
		slog.Warn("tagbot: DATABASE_URL is not set, warnings are disabled")
	}
	h := handlers.NewHandler(b, cfg)

	client, err := disgo.New(cfg.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMessages,
			gateway.IntentMessageContent,
			gateway.IntentGuildModeration),
			gateway.WithPresenceOpts(gateway.WithListeningActivity(cfg.Prefix+"tag"))),
		bot.WithEventListeners(h, h.Listeners()))
	if err != nil {
		panic(err)
	}

	defer client.Close(context.TODO())

	if err := handler.SyncCommands(client, commands.Commands, cfg.DevGuilds); err != nil {
		slog.Error("tagbot: error while syncing commands", tint.Err(err))
	}

	if err := client.OpenGateway(context.TODO()); err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	if cfg.APIAddr != "" {
		server := api.NewServer(cfg.APIAddr, b.Settings)
		eg.Go(server.Start)
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	slog.Info("tagbot: the bot is now running.")
	<-ctx.Done()
	if err := eg.Wait(); err != nil {
		slog.Error("tagbot: error while running the API", tint.Err(err))
	}
	slog.Info("tagbot: shutting down...")
}

func closeStore(s *storage.Store) {
	if err := s.Close(); err != nil {
		slog.Error("tagbot: error while closing a store", slog.String("store.path", s.Path()), tint.Err(err))
	}
}
