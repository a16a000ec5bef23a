package cmd

import (
	"testing"
	"time"

	"github.com/rsso-project/rsso/internal/feed"
)

func cacheWithItems(t *testing.T, url, alias string, items ...feed.Item) *feed.Cache {
	t.Helper()
	c := feed.NewCache(url, alias, time.Now())
	c.Items = items
	return c
}

func itemAt(title string, published time.Time) feed.Item {
	return feed.Item{
		Identity:    title,
		Title:       title,
		PublishedAt: &published,
		FirstSeenAt: published,
	}
}

func TestCollectRecent_OrdersAcrossFeeds(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := cacheWithItems(t, "https://a.example/feed", "a",
		itemAt("a-new", base.Add(3*time.Hour)),
		itemAt("a-old", base),
	)
	b := cacheWithItems(t, "https://b.example/feed", "b",
		itemAt("b-mid", base.Add(1*time.Hour)),
	)

	rows := collectRecent([]*feed.Cache{a, b}, 0)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.item.Title
	}
	want := []string{"a-new", "b-mid", "a-old"}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}

	if rows[0].label != "a" || rows[1].label != "b" {
		t.Errorf("rows carry wrong feed labels: %q, %q", rows[0].label, rows[1].label)
	}
}

func TestCollectRecent_AppliesLimit(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := cacheWithItems(t, "https://a.example/feed", "a",
		itemAt("one", base.Add(2*time.Hour)),
		itemAt("two", base.Add(1*time.Hour)),
		itemAt("three", base),
	)

	rows := collectRecent([]*feed.Cache{c}, 2)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].item.Title != "one" || rows[1].item.Title != "two" {
		t.Errorf("limit kept wrong rows: %q, %q", rows[0].item.Title, rows[1].item.Title)
	}
}

func TestCollectRecent_UndatedItemsUseFirstSeen(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	undated := feed.Item{Identity: "undated", Title: "undated", FirstSeenAt: base.Add(2 * time.Hour)}
	dated := itemAt("dated", base)

	c := cacheWithItems(t, "https://a.example/feed", "a", dated, undated)

	rows := collectRecent([]*feed.Cache{c}, 0)
	if rows[0].item.Title != "undated" {
		t.Errorf("expected undated item sorted by first-seen time, got %q first", rows[0].item.Title)
	}
}
