// Package cache keeps rendered pages keyed by path and drops them when the
// data behind them changes.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Listener is told about every revalidation after the entries are dropped.
type Listener func(subdomainID string, paths []string)

type RenderCache struct {
	store *gocache.Cache

	mu        sync.RWMutex
	listeners []Listener
}

func New(ttl time.Duration) *RenderCache {
	return &RenderCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *RenderCache) Get(path string) ([]byte, bool) {
	if v, found := c.store.Get(path); found {
		if page, ok := v.([]byte); ok {
			return page, true
		}
	}
	return nil, false
}

func (c *RenderCache) Set(path string, page []byte) {
	c.store.Set(path, page, gocache.DefaultExpiration)
}

// GetOrRender returns the cached page or renders, stores and returns it.
// Render errors are not cached.
func (c *RenderCache) GetOrRender(path string, render func() ([]byte, error)) ([]byte, error) {
	if page, ok := c.Get(path); ok {
		return page, nil
	}

	page, err := render()
	if err != nil {
		return nil, err
	}

	c.Set(path, page)
	return page, nil
}

func (c *RenderCache) OnRevalidate(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Revalidate drops the given paths and notifies listeners. It never fails;
// a listener that cannot deliver is expected to log and move on.
func (c *RenderCache) Revalidate(subdomainID string, paths ...string) {
	for _, p := range paths {
		c.store.Delete(p)
	}

	c.mu.RLock()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, l := range listeners {
		l(subdomainID, paths)
	}
}

func (c *RenderCache) ItemCount() int {
	return c.store.ItemCount()
}
