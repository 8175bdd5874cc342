package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// storedName derives a collision-free file name, keeping the original
// extension so content type can still be inferred.
func storedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

// LocalStorage keeps cover images on the local filesystem.
type LocalStorage struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalStorage creates the store, ensuring the base directory exists.
func NewLocalStorage(basePath string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create base path: %w", err)
	}
	return &LocalStorage{basePath: basePath, logger: logger}, nil
}

// Save writes the content under a fresh stored name.
func (s *LocalStorage) Save(ctx context.Context, name string, content io.Reader) (string, string, error) {
	stored := storedName(name)
	path := filepath.Join(s.basePath, stored)

	file, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("write file: %w", err)
	}

	return path, stored, nil
}

// Read returns the stored bytes, or nil when absent.
func (s *LocalStorage) Read(ctx context.Context, stored string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, stored))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
