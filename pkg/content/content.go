// Package content provides filesystem-backed content access for prompt text.
// Documents in the catalog reference files by path; this package resolves and
// reads them on demand, and writes generated prompt files under a root
// directory.
package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alephdao/agent-builder/pkg/lifecycle"
)

// System manages content file operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that ensures the root directory exists.
	Start(lc *lifecycle.Coordinator) error
	// Read returns the text at the given path. Relative paths resolve under
	// the root directory; absolute paths are read as-is. Returns ErrNotFound
	// if no file exists at the path.
	Read(path string) (string, error)
	// Write stores text at the given key under the root directory, creating
	// parent directories as needed. Returns the resolved path of the file.
	Write(key, text string) (string, error)
	// Exists reports whether a regular file exists at the given path.
	Exists(path string) (bool, error)
}

type store struct {
	root   string
	logger *slog.Logger
}

// New creates a content system rooted at the configured directory.
func New(cfg *Config, logger *slog.Logger) System {
	return &store{
		root:   cfg.Root,
		logger: logger.With("system", "content"),
	}
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting content store", "root", s.root)

	lc.OnStartup(func() {
		if err := os.MkdirAll(s.root, 0o755); err != nil {
			s.logger.Error("content root initialization failed", "error", err)
			return
		}

		s.logger.Info("content root ready", "root", s.root)
	})

	return nil
}

func (s *store) Read(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	resolved := s.resolve(path)
	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read content %s: %w", resolved, err)
	}

	return string(data), nil
}

func (s *store) Write(key, text string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	resolved := filepath.Join(s.root, key)
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create content directory: %w", err)
	}

	if err := os.WriteFile(resolved, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write content %s: %w", resolved, err)
	}

	s.logger.Info("content written", "path", resolved)
	return resolved, nil
}

func (s *store) Exists(path string) (bool, error) {
	if path == "" {
		return false, ErrEmptyPath
	}

	info, err := os.Stat(s.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat content %s: %w", path, err)
	}

	return info.Mode().IsRegular(), nil
}

// Catalog entries may point anywhere on the local machine, so absolute
// paths pass through untouched.
func (s *store) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}

// Write keys always land under the root, so traversal segments are rejected.
func validateKey(key string) error {
	if key == "" {
		return ErrEmptyPath
	}
	if filepath.IsAbs(key) || strings.Contains(key, "..") {
		return ErrInvalidPath
	}
	return nil
}
