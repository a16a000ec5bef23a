package feed

import (
	"encoding/json"
	"fmt"
	"time"
)

// Registry maps feed URLs to their caches and tracks the alias index and
// subscription order. The alias index is derived data: it is rebuilt from the
// cache records on load and never persisted.
type Registry struct {
	feeds   map[string]*Cache
	aliases map[string]string // alias -> feed URL
	order   []string          // feed URLs in subscription order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		feeds:   make(map[string]*Cache),
		aliases: make(map[string]string),
	}
}

// Subscribe adds a new feed and returns its key (the URL). It fails with
// ErrDuplicateSubscription if the URL is already subscribed and with
// ErrAliasConflict if the alias is bound to another feed. A failed call
// leaves the registry unchanged.
func (r *Registry) Subscribe(url, alias string, now time.Time) (string, error) {
	if _, ok := r.feeds[url]; ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateSubscription, url)
	}
	if alias != "" {
		if owner, ok := r.aliases[alias]; ok {
			return "", fmt.Errorf("%w: %q is bound to %s", ErrAliasConflict, alias, owner)
		}
	}

	r.feeds[url] = NewCache(url, alias, now)
	r.order = append(r.order, url)
	if alias != "" {
		r.aliases[alias] = url
	}
	return url, nil
}

// Unsubscribe removes a feed and its alias-index entry, matched by alias or
// URL. Fails with ErrNotFound when nothing matches.
func (r *Registry) Unsubscribe(keyOrAlias string) error {
	url, ok := r.Resolve(keyOrAlias)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, keyOrAlias)
	}

	if alias := r.feeds[url].Alias; alias != "" {
		delete(r.aliases, alias)
	}
	delete(r.feeds, url)
	for i, u := range r.order {
		if u == url {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Rename binds a new alias to an existing feed, replacing any previous one.
// Fails with ErrNotFound for unknown feeds and ErrAliasConflict when the
// alias already belongs to a different feed.
func (r *Registry) Rename(keyOrAlias, newAlias string) error {
	url, ok := r.Resolve(keyOrAlias)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, keyOrAlias)
	}
	if owner, ok := r.aliases[newAlias]; ok && owner != url {
		return fmt.Errorf("%w: %q is bound to %s", ErrAliasConflict, newAlias, owner)
	}

	c := r.feeds[url]
	if c.Alias != "" {
		delete(r.aliases, c.Alias)
	}
	c.Alias = newAlias
	r.aliases[newAlias] = url
	return nil
}

// Resolve maps an alias or literal URL to a feed key. The alias index is
// consulted first.
func (r *Registry) Resolve(keyOrAlias string) (string, bool) {
	if url, ok := r.aliases[keyOrAlias]; ok {
		return url, true
	}
	if _, ok := r.feeds[keyOrAlias]; ok {
		return keyOrAlias, true
	}
	return "", false
}

// Get returns the cache for a feed key.
func (r *Registry) Get(url string) (*Cache, bool) {
	c, ok := r.feeds[url]
	return c, ok
}

// Lookup resolves an alias or URL and returns the matching cache.
func (r *Registry) Lookup(keyOrAlias string) (*Cache, bool) {
	url, ok := r.Resolve(keyOrAlias)
	if !ok {
		return nil, false
	}
	return r.feeds[url], true
}

// List returns all caches in subscription order.
func (r *Registry) List() []*Cache {
	result := make([]*Cache, 0, len(r.order))
	for _, url := range r.order {
		result = append(result, r.feeds[url])
	}
	return result
}

// Len returns the number of subscriptions.
func (r *Registry) Len() int {
	return len(r.feeds)
}

// registryFile is the persisted shape: an ordered feed list. The URL map and
// alias index are rebuilt on load.
type registryFile struct {
	Version int      `json:"version"`
	Feeds   []*Cache `json:"feeds"`
}

// registryFileVersion is the current state blob format version.
const registryFileVersion = 1

// MarshalJSON serializes the registry as an ordered feed list.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(registryFile{
		Version: registryFileVersion,
		Feeds:   r.List(),
	})
}

// UnmarshalJSON rebuilds the registry, including the derived alias index,
// from a persisted feed list. Duplicate URLs or aliases in the blob violate
// the registry invariants and are rejected.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}

	feeds := make(map[string]*Cache, len(file.Feeds))
	aliases := make(map[string]string, len(file.Feeds))
	order := make([]string, 0, len(file.Feeds))

	for _, c := range file.Feeds {
		if c.URL == "" {
			return fmt.Errorf("feed entry without url")
		}
		if _, ok := feeds[c.URL]; ok {
			return fmt.Errorf("duplicate feed url %s", c.URL)
		}
		if c.Alias != "" {
			if owner, ok := aliases[c.Alias]; ok {
				return fmt.Errorf("alias %q bound to both %s and %s", c.Alias, owner, c.URL)
			}
			aliases[c.Alias] = c.URL
		}
		feeds[c.URL] = c
		order = append(order, c.URL)
	}

	r.feeds = feeds
	r.aliases = aliases
	r.order = order
	return nil
}
