package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sandtable-catalog/core"

	"github.com/sirupsen/logrus"
)

type fsStore struct {
	basePath string
}

// NewStore creates a filesystem-based store rooted at basePath. Object
// keys map to file paths; slashes in keys become subdirectories.
func NewStore(basePath string) *fsStore {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		logrus.Fatalf("failed to create base directory: %v", err)
	}
	return &fsStore{basePath: basePath}
}

// keyPath resolves a key under the base path and rejects anything that
// escapes it.
func (s *fsStore) keyPath(key string) (string, error) {
	filePath := filepath.Join(s.basePath, filepath.FromSlash(key))

	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", err
	}
	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(absFile, absBase+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid key %q: escapes store root", key)
	}
	return absFile, nil
}

func (s *fsStore) Get(ctx context.Context, key string) ([]byte, error) {
	filePath, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object %s: %w", key, core.ErrKeyNotFound)
		}
		logrus.WithField("key", key).WithError(err).Error("Failed to read object")
		return nil, err
	}
	return data, nil
}

func (s *fsStore) Put(ctx context.Context, key string, data []byte) error {
	filePath, err := s.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		logrus.WithField("key", key).WithError(err).Error("Failed to create object directory")
		return err
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		logrus.WithField("key", key).WithError(err).Error("Failed to write object")
		return err
	}
	return nil
}
