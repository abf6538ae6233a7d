package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// DefaultMaxPages bounds pagination traversal against runaway endpoints.
const DefaultMaxPages = 100

// PageFunc fetches one page of a listing. It is stateless and invoked
// repeatedly with an incrementing page number, starting at 1.
type PageFunc func(ctx context.Context, page int) (json.RawMessage, error)

// pageShape classifies a listing response body. Every response is classified
// into exactly one shape before any accumulation happens.
type pageShape int

const (
	// pageBareArray is a bare ordered sequence of items: a single page with
	// no continuation.
	pageBareArray pageShape = iota

	// pageEnvelope wraps the items in a container that also carries an
	// optional "next" continuation indicator.
	pageEnvelope

	// pageUnrecognized is any other shape, treated as an empty terminal page.
	pageUnrecognized
)

// page is the result of classifying one listing response.
type page struct {
	shape pageShape
	items []json.RawMessage
	next  bool
}

// classifyPage decides which of the three response shapes the body has.
// Listing endpoints are polymorphic: some always page, some never, so the
// shape must be detected per response rather than assumed.
func classifyPage(body json.RawMessage) page {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return page{shape: pageUnrecognized}
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return page{shape: pageUnrecognized}
		}
		return page{shape: pageBareArray, items: items}

	case '{':
		var envelope struct {
			Results *[]json.RawMessage `json:"results"`
			Next    json.RawMessage    `json:"next"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return page{shape: pageUnrecognized}
		}
		if envelope.Results == nil {
			return page{shape: pageUnrecognized}
		}
		next := len(envelope.Next) > 0 && !bytes.Equal(bytes.TrimSpace(envelope.Next), []byte("null"))
		return page{shape: pageEnvelope, items: *envelope.Results, next: next}

	default:
		return page{shape: pageUnrecognized}
	}
}

// CollectPages drives fetch sequentially from page 1 and returns the
// concatenation of all pages' items in the order they were returned.
//
// Traversal stops when a page carries no continuation indicator, when an
// empty page is returned, when maxPages is exceeded, or when fetch fails.
// A mid-traversal failure is a recoverable partial-result condition: the
// items accumulated so far are returned and the interruption is logged at
// warn level. Reaching maxPages with a continuation still present is an
// observable truncation, not an error.
//
// maxPages values <= 0 select DefaultMaxPages.
func CollectPages(ctx context.Context, fetch PageFunc, maxPages int, logger *slog.Logger) []json.RawMessage {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if logger == nil {
		logger = slog.Default()
	}

	var items []json.RawMessage
	for pageNum := 1; pageNum <= maxPages; pageNum++ {
		body, err := fetch(ctx, pageNum)
		if err != nil {
			logger.Warn("pagination interrupted, returning partial results",
				"page", pageNum,
				"collected", len(items),
				"error", err,
			)
			return items
		}

		p := classifyPage(body)
		items = append(items, p.items...)

		switch p.shape {
		case pageBareArray:
			// A bare sequence is the only page there is.
			return items
		case pageEnvelope:
			if !p.next || len(p.items) == 0 {
				return items
			}
		default:
			// Unexpected shape: treat as an empty terminal page.
			return items
		}

		if pageNum == maxPages {
			logger.Debug("page limit reached with more pages available",
				"max_pages", maxPages,
				"collected", len(items),
			)
		}
	}

	return items
}

// CollectAs collects all pages and decodes each item into T. A decode
// failure is a local error, not a partial-result condition: it means the
// caller's type does not match what the endpoint returned.
func CollectAs[T any](ctx context.Context, fetch PageFunc, maxPages int, logger *slog.Logger) ([]T, error) {
	raw := CollectPages(ctx, fetch, maxPages, logger)

	out := make([]T, 0, len(raw))
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("decode page item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
