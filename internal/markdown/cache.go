package markdown

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// Cache maps exported note IDs to their file paths
type Cache map[string]string

// BuildCache builds the cache from markdown files in the output directory.
// A missing directory yields an empty cache.
func BuildCache(outputDir string) (Cache, error) {
	slog.Debug("building markdown cache", "dir", outputDir)
	cache := make(Cache)

	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == outputDir {
				return fs.SkipAll
			}
			slog.Warn("failed to access file", "path", path, "error", err)
			return nil
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()

		var matter Frontmatter
		if _, err := frontmatter.Parse(f, &matter); err != nil {
			slog.Warn("failed to parse frontmatter", "path", path, "error", err)
			return nil
		}

		if matter.ID != "" {
			cache[matter.ID] = path
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error building cache: %w", err)
	}

	slog.Debug("markdown cache built", "entries", len(cache))
	return cache, nil
}
