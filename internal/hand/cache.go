package hand

import (
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/tile"
)

type cacheKey struct {
	ruleset  *rule.Ruleset
	encoded  string
	computed string
	robbed   string
}

// entry is pending while its hand is being evaluated.
type entry struct {
	content *Content
	pending bool
}

// CacheStats counts cache lookups.
type CacheStats struct {
	Hits   int
	Misses int
	Size   int
}

// Cache owns evaluated hands. Rule sets are keyed by identity, so a caller
// that changes a rule set's content must Clear the cache. A Cache is not
// safe for concurrent use.
type Cache struct {
	entries map[cacheKey]*entry
	hits    int
	misses  int
	logger  *log.Logger
}

// NewCache creates an empty cache. A nil logger discards log output.
func NewCache(logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Cache{
		entries: make(map[cacheKey]*entry),
		logger:  logger,
	}
}

// Get returns the evaluated hand for encoded under rs. Computed rules are
// always used, robbed is the tile robbed from a kong or tile.NoTile. The
// same arguments return the same *Content until the cache is cleared.
func (c *Cache) Get(rs *rule.Ruleset, encoded string, computed []*rule.Rule, robbed tile.Placed) (*Content, error) {
	key := cacheKey{
		ruleset:  rs,
		encoded:  encoded,
		computed: computedKey(computed),
		robbed:   robbed.String(),
	}
	if e, ok := c.entries[key]; ok {
		if e.pending {
			return nil, &RecursiveEvaluationError{Input: encoded}
		}
		c.hits++
		return e.content, nil
	}

	c.misses++
	c.entries[key] = &entry{pending: true}
	content, err := newContent(c, rs, encoded, computed, robbed)
	if err != nil {
		delete(c.entries, key)
		return nil, err
	}
	c.entries[key] = &entry{content: content}
	c.logger.Debug("Evaluated hand", "hand", encoded, "total", content.Total(), "won", content.Won())
	return content, nil
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.logger.Debug("Clearing hand cache", "size", len(c.entries), "hits", c.hits, "misses", c.misses)
	c.entries = make(map[cacheKey]*entry)
	c.hits = 0
	c.misses = 0
}

// Stats returns the lookup counts since the last Clear.
func (c *Cache) Stats() CacheStats {
	return CacheStats{Hits: c.hits, Misses: c.misses, Size: len(c.entries)}
}

func computedKey(rules []*rule.Rule) string {
	if len(rules) == 0 {
		return ""
	}
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	sort.Strings(names)
	return strings.Join(names, "&&")
}
