// ABOUTME: Paginated list accumulator with id-based deduplication
// ABOUTME: Merges server pages in arrival order and guards against stale-scope responses
package pagedlist

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
)

// PageInfo is the pagination marker returned alongside every server
// page. The accumulator only reads Page and HasNextPage.
type PageInfo struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Page is one server response.
type Page[T any] struct {
	Items      []T      `json:"items"`
	Pagination PageInfo `json:"pagination"`
}

// Fetcher retrieves one page from the collaborating HTTP layer.
type Fetcher[T any] func(ctx context.Context, page int) (Page[T], error)

// Accumulator merges successive pages into one deduplicated,
// order-preserving list. Items are keyed by keyFor; the first
// occurrence of a key wins. Only one fetch may be in flight at a time,
// and responses that arrive after a Reset are discarded via a per-scope
// generation tag.
type Accumulator[T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[T]
	keyFor   func(T) string
	scope    string
	gen      string
	items    []T
	seen     map[string]struct{}
	lastPage int
	hasNext  bool
	fetching bool
	cancel   context.CancelFunc
}

// New creates an accumulator. A fresh accumulator assumes a first page
// exists until the server says otherwise.
func New[T any](fetch Fetcher[T], keyFor func(T) string) *Accumulator[T] {
	return &Accumulator[T]{
		fetch:   fetch,
		keyFor:  keyFor,
		gen:     ulid.Make().String(),
		seen:    make(map[string]struct{}),
		hasNext: true,
	}
}

// Items returns the accumulated items in arrival order.
func (a *Accumulator[T]) Items() []T {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]T, len(a.items))
	copy(out, a.items)
	return out
}

// HasNextPage reflects the pagination marker of the last merged page.
func (a *Accumulator[T]) HasNextPage() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasNext
}

// Fetching reports whether a page fetch is currently in flight.
func (a *Accumulator[T]) Fetching() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fetching
}

// Scope returns the current scope key.
func (a *Accumulator[T]) Scope() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scope
}

// Reset switches the accumulator to a new scope key: all accumulated
// pages are discarded, any in-flight fetch is cancelled and its
// response will be ignored on arrival, and fetching restarts at page 1.
func (a *Accumulator[T]) Reset(scope string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	a.scope = scope
	a.gen = ulid.Make().String()
	a.items = nil
	a.seen = make(map[string]struct{})
	a.lastPage = 0
	a.hasNext = true
	a.fetching = false
}

// FetchNext fetches the page after the highest page merged so far. It
// is a silent no-op while another fetch is in flight or when the last
// page reported no more data. A failed fetch leaves the accumulated
// items and the hasNextPage marker unchanged, so the caller can retry.
func (a *Accumulator[T]) FetchNext(ctx context.Context) error {
	a.mu.Lock()
	if a.fetching || !a.hasNext {
		a.mu.Unlock()
		return nil
	}
	a.fetching = true
	gen := a.gen
	page := a.lastPage + 1
	fctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	resp, err := a.fetch(fctx, page)
	cancel()

	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.gen {
		// The scope changed while this request was in flight. The
		// response belongs to the old scope and must not be merged.
		return nil
	}

	a.fetching = false
	a.cancel = nil

	if err != nil {
		return err
	}

	for _, item := range resp.Items {
		key := a.keyFor(item)
		if _, ok := a.seen[key]; ok {
			continue
		}
		a.seen[key] = struct{}{}
		a.items = append(a.items, item)
	}

	merged := resp.Pagination.Page
	if merged == 0 {
		merged = page
	}
	if merged > a.lastPage {
		a.lastPage = merged
	}
	a.hasNext = resp.Pagination.HasNextPage

	return nil
}
