package x

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

type Cache interface {
	Get(key string) (string, bool)
	Set(key string, content string) error
}

// FileCache stores one file per key
type FileCache struct {
	dir string
}

// NewFileCache creates a new cache instance
func NewFileCache(cacheDir string) (*FileCache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileCache{dir: cacheDir}, nil
}

// Get retrieves content from cache
func (c *FileCache) Get(key string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return "", false
	}
	return string(content), true
}

// Set stores content in cache
func (c *FileCache) Set(key string, content string) error {
	return os.WriteFile(filepath.Join(c.dir, key), []byte(content), 0644)
}

func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Key hashes arbitrary strings into a file name safe cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}
