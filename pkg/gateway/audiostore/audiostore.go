// Package audiostore persists synthesized audio artifacts on local disk
// with a bounded lifetime.
package audiostore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidRef marks an artifact reference that is not a bare filename.
var ErrInvalidRef = errors.New("invalid audio reference")

// Store writes MP3 artifacts into a single flat directory. Every artifact is
// scheduled for deletion after the TTL; the store never accumulates state
// beyond the files themselves.
type Store struct {
	dir    string
	ttl    time.Duration
	logger *slog.Logger
}

// New creates the artifact directory if needed and returns a store.
func New(dir string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &Store{dir: dir, ttl: ttl, logger: logger}, nil
}

// Save writes audio under a fresh unguessable name and schedules its
// deletion. It returns the bare filename clients use to fetch it.
func (s *Store) Save(audio []byte) (string, error) {
	name := "tts_" + strings.ReplaceAll(uuid.NewString(), "-", "") + ".mp3"
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	s.scheduleDelete(name)
	return name, nil
}

func (s *Store) scheduleDelete(name string) {
	time.AfterFunc(s.ttl, func() {
		err := os.Remove(filepath.Join(s.dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to delete expired artifact", "name", name, "error", err)
		}
	})
}

// Path resolves an artifact reference to a filesystem path. References
// containing path separators or parent traversal are rejected before any
// filesystem access.
func (s *Store) Path(name string) (string, error) {
	if name == "" ||
		strings.Contains(name, "/") ||
		strings.Contains(name, "\\") ||
		strings.Contains(name, "..") {
		return "", ErrInvalidRef
	}
	return filepath.Join(s.dir, name), nil
}

// Sweep deletes every artifact in the directory. Called at startup and
// shutdown so restarts never serve stale audio.
func (s *Store) Sweep() {
	matches, err := filepath.Glob(filepath.Join(s.dir, "tts_*.mp3"))
	if err != nil {
		s.logger.Warn("artifact sweep failed", "error", err)
		return
	}
	removed := 0
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("failed to remove artifact", "path", path, "error", err)
			}
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("swept audio artifacts", "removed", removed)
	}
}
