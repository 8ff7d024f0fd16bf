package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"trade-kart/internal/model"

	"github.com/rs/zerolog"
)

// Storage persists the full cart line collection under a single key. The
// store writes through on every mutation, so the stored payload always
// matches the latest in-memory state by the time the next read occurs.
type Storage interface {
	// Load reads the persisted cart lines. A missing or malformed payload
	// degrades to an empty cart, never an error the caller must handle.
	Load() []model.CartLine

	// Save overwrites the persisted cart lines.
	Save(lines []model.CartLine) error
}

// fileStorage implements Storage as a single JSON file.
type fileStorage struct {
	path   string
	logger zerolog.Logger
}

// NewFileStorage creates file-backed cart storage at the given path.
func NewFileStorage(path string, logger zerolog.Logger) Storage {
	return &fileStorage{
		path:   path,
		logger: logger.With().Str("component", "cart-storage").Logger(),
	}
}

// Load reads the persisted cart lines from disk.
func (s *fileStorage) Load() []model.CartLine {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Str("file", s.path).Msg("failed to read cart snapshot, starting empty")
		}
		return nil
	}

	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Warn().Err(err).Str("file", s.path).Msg("malformed cart snapshot, starting empty")
		return nil
	}

	s.logger.Debug().Int("line_count", len(lines)).Msg("cart snapshot loaded")
	return lines
}

// Save overwrites the persisted cart lines on disk.
func (s *fileStorage) Save(lines []model.CartLine) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart storage directory: %w", err)
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}

	return nil
}
