// Package feed implements the subscription and cache engine: item identity,
// per-feed item history, the subscription registry, and the refresh coordinator.
package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"
)

// RawItem is one entry as delivered by the transport/parser boundary.
// The engine treats it as opaque input; identity is resolved at merge time.
type RawItem struct {
	GUID      string
	Title     string
	Link      string
	Summary   string
	Published *time.Time
}

// Item is one cached feed entry, keyed by Identity within a feed's history.
type Item struct {
	Identity    string     `json:"identity"`
	Title       string     `json:"title"`
	Link        string     `json:"link,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FirstSeenAt time.Time  `json:"first_seen_at"`
}

// IdentityOf resolves the deduplication key for a raw item. It prefers the
// source-provided GUID, falls back to the link URL, and finally to a hash of
// the title and published time. Deterministic for equal inputs.
func IdentityOf(raw RawItem) string {
	if raw.GUID != "" {
		return raw.GUID
	}
	if raw.Link != "" {
		return raw.Link
	}
	h := sha256.New()
	h.Write([]byte(raw.Title))
	if raw.Published != nil {
		h.Write([]byte(raw.Published.UTC().Format(time.RFC3339Nano)))
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}

// NewItem builds a cache entry from a raw item, resolving its identity.
func NewItem(raw RawItem, now time.Time) Item {
	return Item{
		Identity:    IdentityOf(raw),
		Title:       raw.Title,
		Link:        raw.Link,
		Summary:     raw.Summary,
		PublishedAt: raw.Published,
		FirstSeenAt: now,
	}
}

// EffectiveTime returns the timestamp used for display: the published time
// when present, otherwise the time the item was first seen.
func (it Item) EffectiveTime() time.Time {
	if it.PublishedAt != nil {
		return *it.PublishedAt
	}
	return it.FirstSeenAt
}

// sameContent reports whether two items with equal identity carry the same
// stored fields. A mismatch triggers an in-place update during merge.
func (it Item) sameContent(other Item) bool {
	if it.Title != other.Title || it.Link != other.Link || it.Summary != other.Summary {
		return false
	}
	switch {
	case it.PublishedAt == nil && other.PublishedAt == nil:
		return true
	case it.PublishedAt == nil || other.PublishedAt == nil:
		return false
	default:
		return it.PublishedAt.Equal(*other.PublishedAt)
	}
}

// sortNewestFirst orders items by published time descending. Items without a
// published time sort after all items that have one; ties keep their current
// relative order.
func sortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
