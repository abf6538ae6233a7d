package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// envelopePage builds an envelope body with numbered items and an optional
// continuation indicator.
func envelopePage(start, count int, next bool) json.RawMessage {
	items := make([]map[string]int, 0, count)
	for i := range count {
		items = append(items, map[string]int{"id": start + i})
	}
	body := map[string]any{"results": items}
	if next {
		body["next"] = "https://api.example.com/items?page=2"
	} else {
		body["next"] = nil
	}
	data, _ := json.Marshal(body)
	return data
}

func itemIDs(t *testing.T, raw []json.RawMessage) []int {
	t.Helper()
	ids := make([]int, 0, len(raw))
	for _, r := range raw {
		var item struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(r, &item); err != nil {
			t.Fatalf("unmarshal item: %v", err)
		}
		ids = append(ids, item.ID)
	}
	return ids
}

func TestCollectPagesEnvelopes(t *testing.T) {
	// 7 items split 3+3+1, next set on the first two pages only.
	pages := []json.RawMessage{
		envelopePage(1, 3, true),
		envelopePage(4, 3, true),
		envelopePage(7, 1, false),
	}

	calls := 0
	fetch := func(_ context.Context, page int) (json.RawMessage, error) {
		calls++
		return pages[page-1], nil
	}

	items := CollectPages(context.Background(), fetch, 0, testLogger())

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	ids := itemIDs(t, items)
	if len(ids) != 7 {
		t.Fatalf("items = %d, want 7", len(ids))
	}
	for i, id := range ids {
		if id != i+1 {
			t.Errorf("item %d = %d, want %d (order preserved)", i, id, i+1)
		}
	}
}

func TestCollectPagesBareArray(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, _ int) (json.RawMessage, error) {
		calls++
		return json.RawMessage(`[{"id":1},{"id":2}]`), nil
	}

	items := CollectPages(context.Background(), fetch, 0, testLogger())

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (bare array is the only page)", calls)
	}
	if got := itemIDs(t, items); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("items = %v, want [1 2]", got)
	}
}

func TestCollectPagesRunawayEndpoint(t *testing.T) {
	const maxPages = 5

	calls := 0
	fetch := func(_ context.Context, page int) (json.RawMessage, error) {
		calls++
		// Always claims there is a next page.
		return envelopePage(page, 1, true), nil
	}

	items := CollectPages(context.Background(), fetch, maxPages, testLogger())

	if calls != maxPages {
		t.Errorf("calls = %d, want exactly %d", calls, maxPages)
	}
	if len(items) != maxPages {
		t.Errorf("items = %d, want %d", len(items), maxPages)
	}
}

func TestCollectPagesPartialOnError(t *testing.T) {
	fetch := func(_ context.Context, page int) (json.RawMessage, error) {
		if page == 3 {
			return nil, errors.New("connection reset")
		}
		return envelopePage(page*10, 2, true), nil
	}

	items := CollectPages(context.Background(), fetch, 0, testLogger())

	// Pages 1 and 2 succeeded with 2 items each; the failure must not
	// discard them.
	if len(items) != 4 {
		t.Errorf("items = %d, want 4 accumulated before the failure", len(items))
	}
}

func TestCollectPagesFirstCallFails(t *testing.T) {
	fetch := func(_ context.Context, _ int) (json.RawMessage, error) {
		return nil, errors.New("boom")
	}

	items := CollectPages(context.Background(), fetch, 0, testLogger())
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}

func TestCollectPagesEmptyEnvelopeStops(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, _ int) (json.RawMessage, error) {
		calls++
		// next is set but the page is empty: traversal must stop.
		return json.RawMessage(`{"results":[],"next":"https://x/2"}`), nil
	}

	items := CollectPages(context.Background(), fetch, 0, testLogger())
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}

func TestClassifyPage(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantShape pageShape
		wantItems int
		wantNext  bool
	}{
		{
			name:      "bare array",
			body:      `[1,2,3]`,
			wantShape: pageBareArray,
			wantItems: 3,
		},
		{
			name:      "envelope with next",
			body:      `{"results":[1,2],"next":"https://x/2","count":10}`,
			wantShape: pageEnvelope,
			wantItems: 2,
			wantNext:  true,
		},
		{
			name:      "envelope with null next",
			body:      `{"results":[1],"next":null}`,
			wantShape: pageEnvelope,
			wantItems: 1,
		},
		{
			name:      "envelope without next key",
			body:      `{"results":[1]}`,
			wantShape: pageEnvelope,
			wantItems: 1,
		},
		{
			name:      "object without results",
			body:      `{"detail":"not a listing"}`,
			wantShape: pageUnrecognized,
		},
		{
			name:      "empty body",
			body:      ``,
			wantShape: pageUnrecognized,
		},
		{
			name:      "scalar body",
			body:      `42`,
			wantShape: pageUnrecognized,
		},
		{
			name:      "malformed json",
			body:      `{"results":`,
			wantShape: pageUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyPage(json.RawMessage(tt.body))
			if got.shape != tt.wantShape {
				t.Errorf("shape = %d, want %d", got.shape, tt.wantShape)
			}
			if len(got.items) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(got.items), tt.wantItems)
			}
			if got.next != tt.wantNext {
				t.Errorf("next = %v, want %v", got.next, tt.wantNext)
			}
		})
	}
}

func TestCollectAs(t *testing.T) {
	type story struct {
		ID      int    `json:"id"`
		Subject string `json:"subject"`
	}

	fetch := func(_ context.Context, page int) (json.RawMessage, error) {
		if page == 1 {
			return json.RawMessage(`{"results":[{"id":1,"subject":"a"},{"id":2,"subject":"b"}],"next":"https://x/2"}`), nil
		}
		return json.RawMessage(`{"results":[{"id":3,"subject":"c"}],"next":null}`), nil
	}

	stories, err := CollectAs[story](context.Background(), fetch, 0, testLogger())
	if err != nil {
		t.Fatalf("CollectAs: %v", err)
	}
	if len(stories) != 3 {
		t.Fatalf("stories = %d, want 3", len(stories))
	}
	if stories[2].Subject != "c" {
		t.Errorf("stories[2].Subject = %q, want %q", stories[2].Subject, "c")
	}
}

func TestCollectAsDecodeError(t *testing.T) {
	fetch := func(_ context.Context, _ int) (json.RawMessage, error) {
		return json.RawMessage(`[{"id":"not-a-number"}]`), nil
	}

	type item struct {
		ID int `json:"id"`
	}
	_, err := CollectAs[item](context.Background(), fetch, 0, testLogger())
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCollectPagesSequentialPageNumbers(t *testing.T) {
	var seen []int
	fetch := func(_ context.Context, page int) (json.RawMessage, error) {
		seen = append(seen, page)
		next := page < 3
		return envelopePage(page, 1, next), nil
	}

	CollectPages(context.Background(), fetch, 0, testLogger())

	want := fmt.Sprint([]int{1, 2, 3})
	if fmt.Sprint(seen) != want {
		t.Errorf("page sequence = %v, want %s", seen, want)
	}
}
