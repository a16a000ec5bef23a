// Package fetch implements the transport and parser boundary on top of gofeed.
package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rsso-project/rsso/internal/feed"
)

// defaultHTTPTimeout caps a single request even when the caller's context
// carries no deadline.
const defaultHTTPTimeout = 10 * time.Second

// Client fetches and parses remote feeds.
type Client struct {
	parser *gofeed.Parser
}

// NewClient creates a feed client with the given user agent.
func NewClient(userAgent string) *Client {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	p.Client = &http.Client{Timeout: defaultHTTPTimeout}
	return &Client{parser: p}
}

// Fetch retrieves and parses the feed at url. Failures are returned as
// *feed.FetchError classified by cause.
func (c *Client) Fetch(ctx context.Context, feedURL string) (*feed.FetchResult, error) {
	parsed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, classify(err)
	}

	items := make([]feed.RawItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, feed.RawItem{
			GUID:      it.GUID,
			Title:     it.Title,
			Link:      it.Link,
			Summary:   it.Description,
			Published: publishedTime(it),
		})
	}

	return &feed.FetchResult{Title: parsed.Title, Items: items}, nil
}

// publishedTime prefers the published timestamp, falling back to updated.
func publishedTime(it *gofeed.Item) *time.Time {
	if it.PublishedParsed != nil {
		return it.PublishedParsed
	}
	return it.UpdatedParsed
}

// classify maps a gofeed error to a feed.FetchError kind. Anything that is
// neither a deadline, transport, nor HTTP status problem is treated as a
// parse failure: bytes arrived but were not a feed.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &feed.FetchError{Kind: feed.FetchTimeout, Err: err}
	}

	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return &feed.FetchError{Kind: feed.FetchHTTPStatus, Status: httpErr.StatusCode, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &feed.FetchError{Kind: feed.FetchTimeout, Err: err}
		}
		return &feed.FetchError{Kind: feed.FetchNetwork, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &feed.FetchError{Kind: feed.FetchNetwork, Err: err}
	}

	return &feed.FetchError{Kind: feed.FetchParseFailure, Err: err}
}
