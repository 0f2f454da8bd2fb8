// ABOUTME: Tests for the paginated list accumulator
// ABOUTME: Covers dedup, scope resets, single-flight fetching, and failure recovery
package pagedlist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Body string
}

func itemKey(i item) string { return i.ID }

// scriptedFetcher serves a fixed sequence of pages keyed by page number.
func scriptedFetcher(pages map[int]Page[item]) Fetcher[item] {
	return func(_ context.Context, page int) (Page[item], error) {
		p, ok := pages[page]
		if !ok {
			return Page[item]{}, errors.New("no such page")
		}
		return p, nil
	}
}

func TestAccumulator_DedupAcrossPages(t *testing.T) {
	acc := New(scriptedFetcher(map[int]Page[item]{
		1: {
			Items:      []item{{ID: "1"}, {ID: "2"}},
			Pagination: PageInfo{Page: 1, HasNextPage: true},
		},
		2: {
			Items:      []item{{ID: "2"}, {ID: "3"}},
			Pagination: PageInfo{Page: 2, HasNextPage: false},
		},
	}), itemKey)

	require.NoError(t, acc.FetchNext(context.Background()))
	assert.True(t, acc.HasNextPage())

	require.NoError(t, acc.FetchNext(context.Background()))
	assert.False(t, acc.HasNextPage())

	items := acc.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "3", items[2].ID)
}

func TestAccumulator_FirstOccurrenceWins(t *testing.T) {
	acc := New(scriptedFetcher(map[int]Page[item]{
		1: {
			Items:      []item{{ID: "1", Body: "first"}},
			Pagination: PageInfo{Page: 1, HasNextPage: true},
		},
		2: {
			Items:      []item{{ID: "1", Body: "second"}},
			Pagination: PageInfo{Page: 2, HasNextPage: false},
		},
	}), itemKey)

	require.NoError(t, acc.FetchNext(context.Background()))
	require.NoError(t, acc.FetchNext(context.Background()))

	items := acc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Body)
}

func TestAccumulator_NoNextPageIsNoOp(t *testing.T) {
	calls := 0
	acc := New(func(_ context.Context, page int) (Page[item], error) {
		calls++
		return Page[item]{
			Items:      []item{{ID: "1"}},
			Pagination: PageInfo{Page: page, HasNextPage: false},
		}, nil
	}, itemKey)

	require.NoError(t, acc.FetchNext(context.Background()))
	require.NoError(t, acc.FetchNext(context.Background()))
	require.NoError(t, acc.FetchNext(context.Background()))

	assert.Equal(t, 1, calls)
	assert.Len(t, acc.Items(), 1)
}

func TestAccumulator_ResetDiscardsOldScope(t *testing.T) {
	byScope := map[string]Page[item]{
		"contact-a": {Items: []item{{ID: "1"}, {ID: "2"}}, Pagination: PageInfo{Page: 1, HasNextPage: false}},
		"contact-b": {Items: []item{{ID: "9"}}, Pagination: PageInfo{Page: 1, HasNextPage: false}},
	}

	var acc *Accumulator[item]
	acc = New(func(_ context.Context, page int) (Page[item], error) {
		return byScope[acc.Scope()], nil
	}, itemKey)

	acc.Reset("contact-a")
	require.NoError(t, acc.FetchNext(context.Background()))
	require.Len(t, acc.Items(), 2)

	acc.Reset("contact-b")
	require.NoError(t, acc.FetchNext(context.Background()))

	items := acc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "9", items[0].ID)
}

func TestAccumulator_StaleResponseNotMerged(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	acc := New(func(ctx context.Context, page int) (Page[item], error) {
		close(started)
		<-release
		return Page[item]{
			Items:      []item{{ID: "stale"}},
			Pagination: PageInfo{Page: page, HasNextPage: true},
		}, nil
	}, itemKey)
	acc.Reset("old-scope")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = acc.FetchNext(context.Background())
	}()

	<-started
	acc.Reset("new-scope")
	close(release)
	wg.Wait()

	// The old scope's response arrived after the reset and must not
	// appear in the new scope's list.
	assert.Empty(t, acc.Items())
	assert.True(t, acc.HasNextPage())
	assert.False(t, acc.Fetching())
}

func TestAccumulator_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	acc := New(func(ctx context.Context, page int) (Page[item], error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return Page[item]{
			Items:      []item{{ID: "1"}},
			Pagination: PageInfo{Page: page, HasNextPage: false},
		}, nil
	}, itemKey)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = acc.FetchNext(context.Background())
	}()

	<-started
	assert.True(t, acc.Fetching())

	// A second call while one is pending is ignored, not queued.
	require.NoError(t, acc.FetchNext(context.Background()))

	close(release)
	wg.Wait()

	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}

func TestAccumulator_FailedFetchLeavesStateAndAllowsRetry(t *testing.T) {
	fail := true
	acc := New(func(_ context.Context, page int) (Page[item], error) {
		if page == 2 && fail {
			return Page[item]{}, errors.New("network down")
		}
		hasNext := page == 1
		return Page[item]{
			Items:      []item{{ID: string(rune('0' + page))}},
			Pagination: PageInfo{Page: page, HasNextPage: hasNext},
		}, nil
	}, itemKey)

	require.NoError(t, acc.FetchNext(context.Background()))
	require.Len(t, acc.Items(), 1)

	err := acc.FetchNext(context.Background())
	require.Error(t, err)

	// Loaded items stay visible and the next-page marker is unchanged.
	assert.Len(t, acc.Items(), 1)
	assert.True(t, acc.HasNextPage())
	assert.False(t, acc.Fetching())

	fail = false
	require.NoError(t, acc.FetchNext(context.Background()))
	assert.Len(t, acc.Items(), 2)
	assert.False(t, acc.HasNextPage())
}

func TestAccumulator_ResetCancelsInFlightContext(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})

	acc := New(func(ctx context.Context, page int) (Page[item], error) {
		close(started)
		select {
		case <-ctx.Done():
			close(cancelled)
			return Page[item]{}, ctx.Err()
		case <-time.After(5 * time.Second):
			return Page[item]{}, errors.New("timed out waiting for cancellation")
		}
	}, itemKey)

	go func() { _ = acc.FetchNext(context.Background()) }()

	<-started
	acc.Reset("elsewhere")

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight fetch was not cancelled by Reset")
	}
}
