package imagecache

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"marquee/internal/logging"
)

// Cache is a content-addressed store for poster image bytes. Keys are a
// deterministic hash of the image's catalog-relative path; entries have no
// expiry since a poster path is assumed to always resolve to the same image.
type Cache struct {
	dir    string
	logger *slog.Logger
}

// New creates a cache rooted at dir. The directory is created lazily on the
// first Put.
func New(dir string, logger *slog.Logger) *Cache {
	return &Cache{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "imagecache"),
	}
}

// Key returns the stable content address for an image's catalog path.
func Key(imagePath string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.TrimSpace(imagePath)))
}

// Get returns the cached bytes for the image path, reporting absent on any
// miss or read failure.
func (c *Cache) Get(imagePath string) ([]byte, bool) {
	if strings.TrimSpace(imagePath) == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.blobPath(imagePath))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("image read failed",
				logging.String("image", imagePath), logging.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Has reports whether the image path is already cached.
func (c *Cache) Has(imagePath string) bool {
	if strings.TrimSpace(imagePath) == "" {
		return false
	}
	info, err := os.Stat(c.blobPath(imagePath))
	return err == nil && !info.IsDir()
}

// Put stores the bytes for the image path. Entries are write-once: an
// existing blob is kept as is. Concurrent writers for the same key race
// harmlessly since the content is assumed identical and the final rename is
// atomic.
func (c *Cache) Put(imagePath string, data []byte) error {
	if strings.TrimSpace(imagePath) == "" {
		return errors.New("image path cannot be empty")
	}
	target := c.blobPath(imagePath)
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("ensure image cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, "blob-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close blob: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("commit blob: %w", err)
	}

	c.logger.Debug("image cached",
		logging.String("image", imagePath), logging.Int("bytes", len(data)))
	return nil
}

func (c *Cache) blobPath(imagePath string) string {
	return filepath.Join(c.dir, Key(imagePath))
}
