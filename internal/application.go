package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ninedttt/gamemaker-bot/internal/config"
	"github.com/ninedttt/gamemaker-bot/internal/engine"
	"github.com/ninedttt/gamemaker-bot/internal/poller"
	"github.com/ninedttt/gamemaker-bot/internal/repository/storage"
	"github.com/ninedttt/gamemaker-bot/internal/stats"
	"github.com/ninedttt/gamemaker-bot/internal/theme"
	"github.com/ninedttt/gamemaker-bot/internal/twitter"
	"github.com/ninedttt/gamemaker-bot/transport/rest"
)

// RunApp - wires the stores, poller and health surface together and runs
// until a signal arrives. A missing credential keeps the health surface up
// with an error status instead of killing the process.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	botStats := stats.New()

	store := selectStore(ctx, logger, conf, botStats)
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("could not close snapshot store", "error", err)
		}
	}()

	// run HTTP health surface
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, botStats); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run mention poller
	pollerErrCh := make(chan error, 1)
	if startErr := startPoller(ctx, logger, conf, store, botStats, pollerErrCh); startErr != nil {
		// The health surface keeps reporting the startup error.
		log.Error("poller did not start", "error", startErr)
		botStats.SetError(startErr.Error())
	}

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-pollerErrCh:
		return fmt.Errorf("poller error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// selectStore picks the backing store once at startup: redis when
// configured and reachable, the local file otherwise. No runtime failover.
func selectStore(ctx context.Context, logger *slog.Logger, conf *config.Config, botStats *stats.Stats) storage.SnapshotStore {
	log := logger.With("component", "app")

	if conf.Store.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(ctx, logger, conf.Store.RedisURL, conf.Store.StateKey)
		if err == nil {
			log.Info("using redis for persistence")
			botStats.SetStore(redisStore.Backend(), true)
			return redisStore
		}

		log.Warn("could not connect to redis, falling back to file persistence", "error", err)
	}

	fileStore := storage.NewFileStore(logger, conf.Store.FilePath)
	botStats.SetStore(fileStore.Backend(), false)

	return fileStore
}

func startPoller(ctx context.Context, logger *slog.Logger, conf *config.Config, store storage.SnapshotStore, botStats *stats.Stats, errCh chan<- error) error {
	log := logger.With("component", "app")

	if conf.Bot.BearerToken == "" {
		return fmt.Errorf("missing required credential: BEARER_TOKEN")
	}

	client := twitter.New(conf.Bot.BearerToken)

	me, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate with platform API: %w", err)
	}
	log.Info("Gamemaker online", "username", me.Username, "id", me.ID)

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // game moves, not secrets
	gameEngine := engine.New(logger, theme.Default(), rng)

	mentionPoller := poller.New(
		logger,
		client,
		store,
		gameEngine,
		botStats,
		conf.Bot.PollInterval(),
		conf.Bot.MaxMentionsPerCycle,
	)

	go func() {
		if pollErr := mentionPoller.Run(ctx); pollErr != nil {
			log.Error("poller error", "error", pollErr)
			errCh <- pollErr
		}
	}()

	return nil
}
