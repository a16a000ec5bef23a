package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Fetcher is the transport and parser boundary: given a URL it returns the
// parsed feed document or an error (ideally a *FetchError).
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// FetchResult is a parsed feed document.
type FetchResult struct {
	Title string
	Items []RawItem
}

// Status is the per-feed result of a refresh attempt.
type Status int

const (
	// StatusSkipped means the feed was fresh and no transport call was made.
	StatusSkipped Status = iota
	// StatusUpdated means a fetch succeeded and its items were merged.
	StatusUpdated
	// StatusFailed means the fetch failed; the cache state is unchanged.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusUpdated:
		return "updated"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports what happened to one feed during a refresh.
type Outcome struct {
	URL    string
	Label  string
	Status Status
	Added  int
	Err    error
}

// Options configures a Coordinator.
type Options struct {
	// RefreshAge is the TTL window: feeds refreshed more recently are Fresh.
	RefreshAge time.Duration
	// MaxHistory bounds each feed's item history.
	MaxHistory int
	// Workers bounds the number of concurrent fetches during RefreshAll.
	Workers int
	// FetchTimeout is applied per fetch; zero means no extra deadline.
	FetchTimeout time.Duration
	Logger       *slog.Logger
}

// Coordinator decides per feed whether a refresh is due and applies fetched
// documents into the registry. Fetches run concurrently during RefreshAll;
// all cache mutation goes through a single mutex.
type Coordinator struct {
	fetcher Fetcher
	opts    Options

	mu sync.Mutex
}

// NewCoordinator creates a coordinator. Zero option fields get defaults:
// 60m refresh age, 200 items of history, 4 workers.
func NewCoordinator(fetcher Fetcher, opts Options) *Coordinator {
	if opts.RefreshAge <= 0 {
		opts.RefreshAge = 60 * time.Minute
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = 200
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Coordinator{fetcher: fetcher, opts: opts}
}

// RefreshOne refreshes a single feed, addressed by alias or URL. A fresh,
// unforced feed is skipped without a transport call. Fetch failures are
// reported in the outcome, not as the returned error; only an unknown key is
// an error.
func (co *Coordinator) RefreshOne(ctx context.Context, reg *Registry, keyOrAlias string, now time.Time, force bool) (Outcome, error) {
	c, ok := reg.Lookup(keyOrAlias)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrNotFound, keyOrAlias)
	}
	return co.refresh(ctx, c, now, force), nil
}

// RefreshAll refreshes every subscription, fetching concurrently with a
// bounded worker pool. One feed's failure never aborts the others; outcomes
// are returned in subscription order. Feeds merged before a cancellation
// keep their updates.
func (co *Coordinator) RefreshAll(ctx context.Context, reg *Registry, now time.Time, force bool) []Outcome {
	feeds := reg.List()
	outcomes := make([]Outcome, len(feeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(co.opts.Workers)
	for i, c := range feeds {
		g.Go(func() error {
			outcomes[i] = co.refresh(ctx, c, now, force)
			return nil
		})
	}
	// Workers never return errors; failures live in the outcomes.
	_ = g.Wait()
	return outcomes
}

func (co *Coordinator) refresh(ctx context.Context, c *Cache, now time.Time, force bool) Outcome {
	out := Outcome{URL: c.URL, Label: c.Label()}

	if !force && !c.Stale(now, co.opts.RefreshAge) {
		out.Status = StatusSkipped
		co.opts.Logger.Debug("feed is fresh, skipping", "feed", c.URL)
		return out
	}

	fctx := ctx
	if co.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, co.opts.FetchTimeout)
		defer cancel()
	}

	res, err := co.fetcher.Fetch(fctx, c.URL)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		co.opts.Logger.Debug("fetch failed", "feed", c.URL, "error", err)
		co.mu.Lock()
		c.LastError = err.Error()
		co.mu.Unlock()
		return out
	}

	co.mu.Lock()
	if res.Title != "" {
		c.Title = res.Title
	}
	out.Added = c.Merge(res.Items, co.opts.MaxHistory, now)
	c.LastError = ""
	co.mu.Unlock()

	out.Status = StatusUpdated
	co.opts.Logger.Debug("feed refreshed", "feed", c.URL, "added", out.Added)
	return out
}
