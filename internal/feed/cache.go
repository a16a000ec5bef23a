package feed

import "time"

// Cache holds the state of one subscribed feed: metadata, staleness
// timestamp, and its bounded item history, newest first.
type Cache struct {
	URL             string     `json:"url"`
	Alias           string     `json:"alias,omitempty"`
	Title           string     `json:"title,omitempty"`
	AddedAt         time.Time  `json:"added_at"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	Items           []Item     `json:"items,omitempty"`
}

// NewCache creates an empty cache for a freshly subscribed feed.
func NewCache(url, alias string, now time.Time) *Cache {
	return &Cache{
		URL:     url,
		Alias:   alias,
		AddedAt: now,
	}
}

// Label returns the name used when displaying this feed: the alias if set,
// then the fetched feed title, then the URL.
func (c *Cache) Label() string {
	if c.Alias != "" {
		return c.Alias
	}
	if c.Title != "" {
		return c.Title
	}
	return c.URL
}

// Stale reports whether the feed is due for a refresh: never fetched, or the
// TTL window since the last successful fetch has elapsed.
func (c *Cache) Stale(now time.Time, ttl time.Duration) bool {
	if c.LastRefreshedAt == nil {
		return true
	}
	return now.Sub(*c.LastRefreshedAt) >= ttl
}

// Merge folds freshly fetched items into the history and returns the number
// of newly added items. Items whose identity already exists are updated in
// place when their content changed, preserving the first-seen time. The
// combined history is re-sorted newest first and truncated to maxHistory;
// items beyond the bound are permanently dropped. The refresh timestamp
// advances even when fetched is empty, leaving existing history untouched.
func (c *Cache) Merge(fetched []RawItem, maxHistory int, now time.Time) int {
	byIdentity := make(map[string]int, len(c.Items))
	for i, it := range c.Items {
		byIdentity[it.Identity] = i
	}

	added := 0
	for _, raw := range fetched {
		in := NewItem(raw, now)
		if i, ok := byIdentity[in.Identity]; ok {
			if !c.Items[i].sameContent(in) {
				in.FirstSeenAt = c.Items[i].FirstSeenAt
				c.Items[i] = in
			}
			continue
		}
		byIdentity[in.Identity] = len(c.Items)
		c.Items = append(c.Items, in)
		added++
	}

	sortNewestFirst(c.Items)
	if maxHistory > 0 && len(c.Items) > maxHistory {
		c.Items = c.Items[:maxHistory:maxHistory]
	}

	t := now
	c.LastRefreshedAt = &t
	return added
}
