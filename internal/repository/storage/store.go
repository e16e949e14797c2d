package storage

import (
	"context"

	"github.com/ninedttt/gamemaker-bot/internal/entity"
)

// SnapshotStore persists the bot's single state snapshot. Load never
// fails: a missing or corrupt snapshot is logged and replaced with the
// zero snapshot, so callers always hold valid state. Save must be atomic
// from a concurrent reader's point of view.
type SnapshotStore interface {
	Load(ctx context.Context) *entity.Snapshot
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	Backend() string
	Close() error
}
