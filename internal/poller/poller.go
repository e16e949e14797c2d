package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ninedttt/gamemaker-bot/internal/apperror"
	"github.com/ninedttt/gamemaker-bot/internal/engine"
	"github.com/ninedttt/gamemaker-bot/internal/entity"
	"github.com/ninedttt/gamemaker-bot/internal/intent"
	"github.com/ninedttt/gamemaker-bot/internal/repository/storage"
	"github.com/ninedttt/gamemaker-bot/internal/stats"
)

const (
	// Backoff on a rate-limit signal from the feed vs. any other error.
	rateLimitBackoff = 15 * time.Minute
	errorBackoff     = 60 * time.Second
)

// Feed is the platform collaborator the poller drains each cycle.
type Feed interface {
	Mentions(ctx context.Context, sinceID string, limit int) ([]entity.Mention, error)
	ResolveAuthor(ctx context.Context, authorID string) (string, error)
	PostReply(ctx context.Context, inReplyTo, text string) (string, error)
}

// Poller runs the mention loop. It is the sole owner of the in-memory
// snapshot and the sole writer to the store; everything here is one
// sequential thread of control.
type Poller struct {
	logger *slog.Logger
	feed   Feed
	store  storage.SnapshotStore
	engine *engine.Engine
	stats  *stats.Stats

	interval   time.Duration
	batchLimit int

	snapshot *entity.Snapshot
}

func New(logger *slog.Logger, feed Feed, store storage.SnapshotStore, gameEngine *engine.Engine, botStats *stats.Stats, interval time.Duration, batchLimit int) *Poller {
	return &Poller{
		logger: logger.With("component", "poller"),

		feed:   feed,
		store:  store,
		engine: gameEngine,
		stats:  botStats,

		interval:   interval,
		batchLimit: batchLimit,
	}
}

// Run loads the persisted snapshot and polls until the context ends.
func (that *Poller) Run(ctx context.Context) error {
	that.snapshot = that.store.Load(ctx)
	that.stats.SetActiveGames(that.snapshot.ActiveGameCount())
	that.stats.SetStatus(stats.StatusRunning)

	that.logger.Info("poller started", "watermark", that.snapshot.Watermark, "interval", that.interval)

	for {
		delay := that.runCycle(ctx)

		if err := sleepWithContext(ctx, delay); err != nil {
			that.logger.Info("poller stopped")
			return nil
		}
	}
}

// runCycle executes one fetch-process-persist pass and returns how long to
// sleep before the next one.
func (that *Poller) runCycle(ctx context.Context) time.Duration {
	that.stats.MarkCheck()

	mentions, err := that.feed.Mentions(ctx, that.snapshot.Watermark, that.batchLimit)
	if errors.Is(err, apperror.ErrRateLimited) {
		that.logger.Warn("rate limited, backing off", "backoff", rateLimitBackoff)
		return rateLimitBackoff
	}
	if err != nil {
		// Watermark untouched, so the same batch is retried next cycle.
		that.logger.Error("failed to fetch mentions", "error", err)
		return errorBackoff
	}

	if len(mentions) > 0 {
		// The watermark covers the whole batch before any message is
		// processed. A crash mid-batch can therefore drop the unprocessed
		// tail: accepted at-most-once behavior, not something to reorder.
		for _, mention := range mentions {
			that.snapshot.AdvanceWatermark(mention.ID)
		}

		for i := range mentions {
			that.processMention(ctx, &mentions[i])
		}
	}

	// Keeps the watermark durable even on idle cycles.
	that.persist(ctx)

	return that.interval
}

func (that *Poller) processMention(ctx context.Context, mention *entity.Mention) {
	that.stats.MentionProcessed()

	if mention.AuthorName == "" {
		name, err := that.feed.ResolveAuthor(ctx, mention.AuthorID)
		if err != nil {
			that.logger.Warn("could not resolve author, falling back to id", "author_id", mention.AuthorID, "error", err)
			name = mention.AuthorID
		}
		mention.AuthorName = name
	}

	outcome := that.engine.Handle(that.snapshot, mention, intent.Classify(mention.Text))

	if outcome.Reply != "" {
		if _, err := that.feed.PostReply(ctx, mention.ID, outcome.Reply); err != nil {
			that.logger.Error("failed to post reply", "message_id", mention.ID, "error", err)
		}
	}

	if outcome.Mutated {
		that.persist(ctx)
		that.stats.SetActiveGames(that.snapshot.ActiveGameCount())
	}
}

// persist writes the full snapshot. Failure is logged, never fatal: the
// in-memory snapshot stays authoritative and the next save catches up.
func (that *Poller) persist(ctx context.Context) {
	if err := that.store.Save(ctx, that.snapshot); err != nil {
		that.logger.Error("failed to persist snapshot", "error", err)
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
