package search

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadcount/storefront/internal/catalog"
)

// stubCatalog records every List call and can delay individual calls to
// simulate slow collaborator responses.
type stubCatalog struct {
	mu       sync.Mutex
	calls    []time.Time
	delays   []time.Duration
	products []catalog.Product
	err      error
}

func (s *stubCatalog) List(_ context.Context, _ string) ([]catalog.Product, error) {
	s.mu.Lock()
	call := len(s.calls)
	s.calls = append(s.calls, time.Now())
	var delay time.Duration
	if call < len(s.delays) {
		delay = s.delays[call]
	}
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubCatalog) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func Test_Searcher_DebouncesKeystrokes(t *testing.T) {
	// given: a 300ms debounce and keystrokes at t=0, 100ms, 200ms
	cat := &stubCatalog{products: []catalog.Product{{ID: "p2", Name: "Chelsea Boots"}}}
	s := NewSearcher(cat, 300*time.Millisecond, 8, testLogger())
	start := time.Now()

	// when
	s.SetQuery("b")
	time.Sleep(100 * time.Millisecond)
	s.SetQuery("boo")
	time.Sleep(100 * time.Millisecond)
	s.SetQuery("boots")

	// then: exactly one lookup runs, with the last value, no earlier
	// than 500ms after the first keystroke
	require.Eventually(t, func() bool {
		r := s.Result()
		return r.Query == "boots" && len(r.Products) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, cat.callCount())
	cat.mu.Lock()
	firedAfter := cat.calls[0].Sub(start)
	cat.mu.Unlock()
	assert.GreaterOrEqual(t, firedAfter, 490*time.Millisecond)
}

func Test_Searcher_BlankQueryCancelsPendingLookup(t *testing.T) {
	// given
	cat := &stubCatalog{products: []catalog.Product{{ID: "p1", Name: "Shirt"}}}
	s := NewSearcher(cat, 50*time.Millisecond, 8, testLogger())

	// when: a keystroke followed by clearing the field inside the window
	s.SetQuery("shirt")
	s.SetQuery("   ")
	time.Sleep(150 * time.Millisecond)

	// then: no lookup ran and the state is "not searching"
	assert.Equal(t, 0, cat.callCount())
	r := s.Result()
	assert.False(t, r.Searching)
	assert.Empty(t, r.Query)
	assert.Empty(t, r.Products)
}

func Test_Searcher_StaleResponseNeverOverwritesNewer(t *testing.T) {
	// given: the first lookup is slow, the second fast
	cat := &stubCatalog{
		products: []catalog.Product{
			{ID: "p1", Name: "Oxford Shirt"},
			{ID: "p2", Name: "Chelsea Boots"},
		},
		delays: []time.Duration{300 * time.Millisecond, 0},
	}
	s := NewSearcher(cat, 10*time.Millisecond, 8, testLogger())

	// when: a second query starts while the first lookup is in flight
	s.SetQuery("shirt")
	time.Sleep(50 * time.Millisecond)
	s.SetQuery("boots")

	// then: the fast second result lands...
	require.Eventually(t, func() bool {
		r := s.Result()
		return r.Query == "boots" && len(r.Products) == 1 && r.Products[0].ID == "p2"
	}, 2*time.Second, 10*time.Millisecond)

	// ...and the slow first response is discarded when it finishes
	time.Sleep(400 * time.Millisecond)
	r := s.Result()
	assert.Equal(t, "boots", r.Query)
	require.Len(t, r.Products, 1)
	assert.Equal(t, "p2", r.Products[0].ID)
}

func Test_Searcher_CatalogFailureDegradesToEmpty(t *testing.T) {
	// given
	cat := &stubCatalog{err: context.DeadlineExceeded}
	s := NewSearcher(cat, 10*time.Millisecond, 8, testLogger())

	// when
	s.SetQuery("boots")

	// then: "no products found", not an error
	require.Eventually(t, func() bool {
		r := s.Result()
		return r.Query == "boots" && r.Searching && cat.callCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, s.Result().Products)
}

func Test_Searcher_ZeroMatchesIsStillSearching(t *testing.T) {
	// given
	cat := &stubCatalog{products: []catalog.Product{{ID: "p1", Name: "Shirt"}}}
	s := NewSearcher(cat, 10*time.Millisecond, 8, testLogger())

	// when
	s.SetQuery("snorkel")

	// then: searching with zero matches, distinct from the blank state
	require.Eventually(t, func() bool {
		return cat.callCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		r := s.Result()
		return r.Searching && r.Query == "snorkel" && len(r.Products) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
