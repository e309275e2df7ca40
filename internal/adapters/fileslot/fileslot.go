// Package fileslot stores the session slot in a file on disk so a fresh
// process can resume the previous session. The CLI uses it.
package fileslot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// Slot is a file-backed ports.SessionSlot. The file is written atomically
// via rename and created with mode 0600.
type Slot struct {
	path string
}

// New returns a Slot stored at path. Parent directories are created on write.
func New(path string) (*Slot, error) {
	if path == "" {
		return nil, errors.New("fileslot: path is required")
	}
	return &Slot{path: path}, nil
}

// Path returns the backing file path.
func (s *Slot) Path() string { return s.path }

func (s *Slot) Read(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read session file: %w", err)
	}
	return data, true, nil
}

func (s *Slot) Write(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *Slot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

var _ ports.SessionSlot = (*Slot)(nil)
