package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live. The stale data stays on disk; callers should
// fetch fresh data and update the cache with [Cache.Set].
var ErrExpired = errors.New("cache entry expired")

// Cache is a file-based cache for JSON-marshalable values.
//
// Each entry is a JSON file in the cache directory, named by the SHA-256
// hash of its key, so arbitrary keys are safe on any filesystem. Entries
// expire by file modification time; a TTL of 0 means they never expire.
//
// A Cache is not goroutine-safe, but separate instances (even in separate
// processes) can share a directory. Use [Cache.Namespace] to scope keys per
// data source and avoid collisions (e.g. "npm:" vs "fixture:").
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache storing entries in dir with the given TTL.
// An empty dir selects the default directory ~/.cache/depvis, which is
// created if missing. Directory creation is the only source of failure.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "depvis")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl, prefix: ""}, nil
}

// Dir returns the absolute path to the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live for cache entries (0 = never expire).
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a cached value by key and unmarshals it into v.
// It returns (true, nil) on a fresh hit, (false, nil) on a miss,
// (false, ErrExpired) when the entry exceeded its TTL, and
// (false, err) for I/O or decode failures. Reads never mutate the cache.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores a value under key, overwriting any existing entry and
// resetting its TTL. The value is marshaled with encoding/json.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a scoped view of the cache that prefixes all keys.
// The returned Cache shares the parent's directory and TTL; namespaces
// can be chained.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
