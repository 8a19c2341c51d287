package linkcheck

import (
	"sync"

	"git.home.luguber.info/inful/wikicheck/internal/article"
)

// Cache stores parsed articles keyed by root-relative path so that each
// document visited as a link target is parsed at most once per checking run.
//
// Article construction is a pure function of file contents, so the cache is
// guarded by a mutex rather than per-path coordination: a racing re-parse
// would be wasted work, not a correctness problem. Callers share one cache
// across the whole run and may pre-seed it with articles they parse anyway.
type Cache struct {
	mu       sync.Mutex
	articles map[string]*article.Article
}

// NewCache returns an empty article cache.
func NewCache() *Cache {
	return &Cache{articles: make(map[string]*article.Article)}
}

// Get returns the cached article for rel, parsing it on first use.
func (c *Cache) Get(root, rel string) (*article.Article, error) {
	c.mu.Lock()
	if a, ok := c.articles[rel]; ok {
		c.mu.Unlock()
		return a, nil
	}
	c.mu.Unlock()

	a, err := article.Parse(root, rel)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.articles[rel] = a
	c.mu.Unlock()
	return a, nil
}

// Put pre-seeds the cache with an already parsed article.
func (c *Cache) Put(a *article.Article) {
	c.mu.Lock()
	c.articles[a.Path()] = a
	c.mu.Unlock()
}

// Len reports how many articles the cache holds.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.articles)
}
