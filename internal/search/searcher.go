package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/threadcount/storefront/internal/catalog"
)

// Lister is the read side of the product collaborator.
type Lister interface {
	List(ctx context.Context, category string) ([]catalog.Product, error)
}

// Result is the current search state. Searching distinguishes "not
// searching" (blank query) from a query that matched zero products.
type Result struct {
	Query     string            `json:"query"`
	Searching bool              `json:"searching"`
	Products  []catalog.Product `json:"products"`
}

// Searcher debounces keystrokes and runs at most one catalog lookup per
// quiet period. Each lookup carries a generation; a lookup that finished
// after a newer keystroke is discarded, so a slow stale response can
// never overwrite a newer result.
type Searcher struct {
	catalog Lister
	delay   time.Duration
	limit   int
	logger  *slog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	result Result
}

func NewSearcher(cat Lister, delay time.Duration, limit int, logger *slog.Logger) *Searcher {
	return &Searcher{
		catalog: cat,
		delay:   delay,
		limit:   limit,
		logger:  logger.With("component", "search"),
		result:  Result{Products: []catalog.Product{}},
	}
}

// SetQuery registers a keystroke. The pending lookup, if any, is
// canceled and the debounce window restarts. A blank query cancels
// immediately and publishes the inactive state.
func (s *Searcher) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Any keystroke invalidates lookups already in flight.
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if isBlank(query) {
		s.result = Result{Products: []catalog.Product{}}
		return
	}

	s.result.Query = query
	s.result.Searching = true

	gen := s.gen
	s.timer = time.AfterFunc(s.delay, func() {
		s.lookup(gen, query)
	})
}

// Reset clears the query and any pending lookup. Fired by the navigation
// controller when leaving the search page.
func (s *Searcher) Reset() {
	s.SetQuery("")
}

// Result returns the current search state.
func (s *Searcher) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.result
	out.Products = make([]catalog.Product, len(s.result.Products))
	copy(out.Products, s.result.Products)
	return out
}

func (s *Searcher) lookup(gen uint64, query string) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	products, err := s.catalog.List(context.Background(), "")
	if err != nil {
		// Degrades to "no products found"; never surfaced as an error.
		s.logger.Warn("Catalog fetch failed during search", "query", query, "error", err)
		products = nil
	}
	matches := Match(query, products, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// A newer keystroke started while this lookup was in flight.
		return
	}
	s.result = Result{Query: query, Searching: true, Products: matches}
}

func isBlank(query string) bool {
	for _, r := range query {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
