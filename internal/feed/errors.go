package feed

import (
	"errors"
	"fmt"
)

// Registry mutation and persistence errors. Callers match with errors.Is.
var (
	ErrDuplicateSubscription = errors.New("feed already subscribed")
	ErrAliasConflict         = errors.New("alias already in use")
	ErrNotFound              = errors.New("no matching feed")
	ErrCorruptState          = errors.New("state file is corrupt")
)

// FetchErrorKind classifies a failed fetch.
type FetchErrorKind int

const (
	// FetchNetwork covers DNS, connection, and other transport failures.
	FetchNetwork FetchErrorKind = iota
	// FetchTimeout means the caller-supplied deadline elapsed.
	FetchTimeout
	// FetchParseFailure means bytes arrived but could not be parsed as a feed.
	FetchParseFailure
	// FetchHTTPStatus means the server answered with a non-success status.
	FetchHTTPStatus
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchTimeout:
		return "timeout"
	case FetchParseFailure:
		return "parse failure"
	case FetchHTTPStatus:
		return "http status"
	default:
		return "unknown"
	}
}

// FetchError is a per-feed, non-fatal fetch failure. Status is set only for
// FetchHTTPStatus.
type FetchError struct {
	Kind   FetchErrorKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch failed: http status %d", e.Status)
	default:
		if e.Err != nil {
			return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("fetch failed (%s)", e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
