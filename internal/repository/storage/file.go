package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ninedttt/gamemaker-bot/internal/entity"
)

// FileStore persists the snapshot to a local JSON file. Writes go to a
// temporary file in the same directory followed by a rename, so a reader
// never observes a half-written snapshot.
type FileStore struct {
	logger *slog.Logger
	path   string
}

func NewFileStore(logger *slog.Logger, path string) *FileStore {
	return &FileStore{
		logger: logger.With("component", "storage", "backend", "file"),
		path:   path,
	}
}

func (that *FileStore) Load(_ context.Context) *entity.Snapshot {
	raw, err := os.ReadFile(that.path)
	if os.IsNotExist(err) {
		return entity.NewSnapshot()
	}

	if err != nil {
		that.logger.Warn("could not read snapshot file, using empty state", "error", err)
		return entity.NewSnapshot()
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		that.logger.Warn("corrupt snapshot file, using empty state", "error", err)
		return entity.NewSnapshot()
	}

	if snapshot.Sessions == nil {
		snapshot.Sessions = make(map[string]*entity.GameSession)
	}

	return &snapshot
}

func (that *FileStore) Save(_ context.Context, snapshot *entity.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(that.path), "games-*.json")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("could not write snapshot: %w", err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("could not close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), that.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("could not replace snapshot file: %w", err)
	}

	return nil
}

func (that *FileStore) Backend() string {
	return "file"
}

func (that *FileStore) Close() error {
	return nil
}
