package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Entry is the on-disk record for one analysis response. ExpiresAt is absolute
// so a later run with a different TTL setting cannot revive an expired entry;
// a zero ExpiresAt means the entry never expires.
type Entry struct {
	Key       string    `json:"key"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

func (e Entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Cache stores analysis responses as one JSON file per entry. A disabled
// Cache is inert: Get always misses and Put, Clear do nothing.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

// New opens the cache rooted at dir, creating it if needed. An empty dir
// selects the platform cache directory. ttlSeconds of zero disables expiry.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{}, nil
	}
	if dir == "" {
		var err error
		dir, err = defaultCacheDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlSeconds) * time.Second,
		enabled: true,
	}, nil
}

// Get returns the cached result for key, or ("", false) on a miss. Expired
// entries are deleted on read.
func (c *Cache) Get(key string) (string, bool) {
	if !c.enabled {
		return "", false
	}
	p := c.entryPath(key)
	e, err := readEntry(p)
	if err != nil {
		return "", false
	}
	if e.expired(time.Now()) {
		os.Remove(p)
		return "", false
	}
	return e.Result, true
}

// Put stores result under key. Callers treat Put as best-effort; a write
// failure never fails the surrounding command.
func (c *Cache) Put(key, result string) error {
	if !c.enabled {
		return nil
	}
	now := time.Now()
	e := Entry{Key: key, Result: result, CreatedAt: now}
	if c.ttl > 0 {
		e.ExpiresAt = now.Add(c.ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	return os.WriteFile(c.entryPath(key), raw, 0o644)
}

// entries lists the entry files currently on disk. A disabled cache has none.
func (c *Cache) entries() ([]string, error) {
	if !c.enabled || c.dir == "" {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing cache entries: %w", err)
	}
	return matches, nil
}

// Clear deletes every cache entry, leaving unrelated files in the cache
// directory alone.
func (c *Cache) Clear() error {
	paths, err := c.entries()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing cache entry: %w", err)
		}
	}
	return nil
}

// Stats summarizes what is on disk under the cache directory.
type Stats struct {
	Dir        string
	Entries    int
	TotalBytes int64
	Expired    int
}

// GetStats scans the cache directory and counts entries, bytes, and entries
// past their expiry that have not been read (and so not yet deleted).
func (c *Cache) GetStats() (Stats, error) {
	st := Stats{Dir: c.dir}
	paths, err := c.entries()
	if err != nil {
		return st, err
	}
	now := time.Now()
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		st.Entries++
		st.TotalBytes += info.Size()
		if e, err := readEntry(path); err == nil && e.expired(now) {
			st.Expired++
		}
	}
	return st, nil
}

// Dir returns the directory entries are stored under.
func (c *Cache) Dir() string {
	return c.dir
}

// Enabled reports whether caching is active.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// HashKey returns the hex SHA-256 of the given key material.
func HashKey(key string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// BuildKey derives the cache key for one analysis from everything that can
// change its outcome. Content must already be redacted so secrets never leak
// into key material.
func BuildKey(provider, model, rubricHash, content string) string {
	return HashKey(provider + ":" + model + ":" + rubricHash + ":" + content)
}

func readEntry(path string) (Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, HashKey(key)+".json")
}

func defaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "claude-md-bench"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "claude-md-bench"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "claude-md-bench", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "claude-md-bench", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "claude-md-bench"), nil
	}
}
