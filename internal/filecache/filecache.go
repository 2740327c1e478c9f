package filecache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hokkori/kifukin/internal/clock"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// maxAge is how long a stored PDF survives before the next save
// opportunistically removes it.
const maxAge = 24 * time.Hour

// ErrNotFound reports an unknown or expired download token.
var ErrNotFound = errors.New("receipt file not found")

// Cache stores generated PDFs in a scratch directory keyed by an
// opaque random token; the token is the filename and the only index.
type Cache struct {
	dir   string
	clock clock.Clock
	log   *zap.Logger
}

func New(dir string, clk clock.Clock, log *zap.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt dir %s: %w", dir, err)
	}
	return &Cache{
		dir:   dir,
		clock: clk,
		log:   log.Named("filecache"),
	}, nil
}

// Save purges expired files, then writes pdf under a fresh token.
func (c *Cache) Save(pdf []byte) (string, error) {
	c.purgeExpired()

	token := newToken()
	if err := os.WriteFile(c.pathFor(token), pdf, 0o644); err != nil {
		return "", fmt.Errorf("write receipt file: %w", err)
	}
	return token, nil
}

// Path resolves a token to its on-disk file. Absent files are a
// not-found condition, not an error.
func (c *Cache) Path(token string) (string, error) {
	if !validToken(token) {
		return "", ErrNotFound
	}
	path := c.pathFor(token)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return path, nil
}

// Read returns the stored PDF bytes for a token.
func (c *Cache) Read(token string) ([]byte, error) {
	path, err := c.Path(token)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// purgeExpired removes PDFs older than maxAge. Best-effort: individual
// stat or remove failures are logged and skipped.
func (c *Cache) purgeExpired() {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.pdf"))
	if err != nil {
		c.log.Warn("scan receipt dir", zap.Error(err))
		return
	}

	now := c.clock.Now()
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.log.Debug("remove expired receipt", zap.String("path", path), zap.Error(err))
			continue
		}
		c.log.Debug("removed expired receipt", zap.String("path", path))
	}
}

func (c *Cache) pathFor(token string) string {
	return filepath.Join(c.dir, token+".pdf")
}

func newToken() string {
	return strings.ToLower(ulid.Make().String())
}

// validToken rejects anything outside the token alphabet so a crafted
// token can never escape the scratch directory.
func validToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		default:
			return false
		}
	}
	return true
}
