package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Key identifies one completion. Release notes are reused only when every
// field matches.
type Key struct {
	Provider     string
	Model        string
	SystemPrompt string
	Body         string
}

func (k Key) filename() string {
	h := sha256.New()
	for _, part := range []string{k.Provider, k.Model, k.SystemPrompt, k.Body} {
		h.Write([]byte(strconv.Itoa(len(part)) + ":" + part))
	}
	return hex.EncodeToString(h.Sum(nil)) + ".json"
}

// Entry is one set of cached release notes.
type Entry struct {
	Notes      string    `json:"notes"`
	TokensUsed int       `json:"tokensUsed,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Cache stores entries as JSON files in a single directory. A nil *Cache
// never hits and discards writes.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// Open creates dir if needed. An empty dir selects $XDG_CACHE_HOME/relnotes,
// or the platform cache directory when XDG_CACHE_HOME is unset.
// A ttl of zero keeps entries forever.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			var err error
			if base, err = os.UserCacheDir(); err != nil {
				return nil, fmt.Errorf("locating cache directory: %w", err)
			}
		}
		dir = filepath.Join(base, "relnotes")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Lookup returns the live entry for k. Expired entries are removed.
func (c *Cache) Lookup(k Key) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	path := filepath.Join(c.dir, k.filename())
	e, err := readEntry(path)
	if err != nil {
		return Entry{}, false
	}
	if c.expired(e) {
		os.Remove(path)
		return Entry{}, false
	}
	return e, true
}

// Store writes e under k, stamping CreatedAt when it is zero.
func (c *Cache) Store(k Key, e Entry) error {
	if c == nil {
		return nil
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = c.now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	return os.WriteFile(filepath.Join(c.dir, k.filename()), data, 0o644)
}

// Clear deletes every entry and reports how many were removed.
func (c *Cache) Clear() (int, error) {
	var removed int
	err := c.walk(func(path string, _ fs.FileInfo) {
		if os.Remove(path) == nil {
			removed++
		}
	})
	return removed, err
}

// Stats summarizes what `relnotes cache show` prints.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
	Expired    int    `json:"expired"`
}

func (c *Cache) Stats() (Stats, error) {
	stats := Stats{Dir: c.Dir()}
	err := c.walk(func(path string, info fs.FileInfo) {
		stats.Entries++
		stats.TotalBytes += info.Size()
		if e, err := readEntry(path); err == nil && c.expired(e) {
			stats.Expired++
		}
	})
	return stats, err
}

func (c *Cache) expired(e Entry) bool {
	return c.ttl > 0 && c.now().Sub(e.CreatedAt) > c.ttl
}

func (c *Cache) walk(fn func(path string, info fs.FileInfo)) error {
	if c == nil {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, de := range entries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".json" {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		fn(filepath.Join(c.dir, de.Name()), info)
	}
	return nil
}

func readEntry(path string) (Entry, error) {
	var e Entry
	data, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(data, &e)
	return e, err
}
