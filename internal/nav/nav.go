// Package nav implements the navigation controller: a whitelist gate over
// page transitions with a two-phase request/commit cycle that gives exit
// animations a stable window before the content swap.
package nav

import (
	"log/slog"
	"sync"
	"time"
)

// Page identifiers known at build time. Any other target is rejected.
const (
	PageHome        = "home"
	PageCart        = "cart"
	PageWishlist    = "wishlist"
	PageSearch      = "search"
	PageAuth        = "auth"
	PageAccount     = "account"
	PageAdmin       = "admin"
	PageSizeGuide   = "size-guide"
	PageSale        = "sale"
	PageNewArrivals = "new-arrivals"
)

// Pages is the full navigation whitelist: top-level pages plus the
// category and subcategory pages.
var Pages = []string{
	PageHome, PageCart, PageWishlist, PageSearch, PageAuth, PageAccount,
	PageAdmin, PageSizeGuide, PageSale, PageNewArrivals,
	"men", "men-shirts", "men-pants", "men-jackets", "men-shoes",
	"women", "women-dresses", "women-tops", "women-skirts", "women-shoes",
	"kids", "kids-boys", "kids-girls",
	"accessories", "accessories-bags", "accessories-belts", "accessories-jewelry",
}

// State is the externally visible navigation state.
type State struct {
	Page     string `json:"page"`
	Loading  bool   `json:"loading"`
	MenuOpen bool   `json:"menuOpen"`
}

// Controller sequences page transitions. A transition sets the loading
// flag and closes the mobile menu immediately, then commits the page
// swap after a fixed delay.
type Controller struct {
	delay  time.Duration
	logger *slog.Logger

	mu       sync.Mutex
	pages    map[string]struct{}
	current  string
	loading  bool
	menuOpen bool

	onLeaveSearch func()
	onCommit      func(page string)
}

func NewController(delay time.Duration, logger *slog.Logger) *Controller {
	pages := make(map[string]struct{}, len(Pages))
	for _, p := range Pages {
		pages[p] = struct{}{}
	}
	return &Controller{
		delay:   delay,
		logger:  logger.With("component", "nav"),
		pages:   pages,
		current: PageHome,
	}
}

// OnLeaveSearch registers the hook fired when a transition leaves the
// search page for a non-search page. Wired to the searcher reset.
func (c *Controller) OnLeaveSearch(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLeaveSearch = fn
}

// OnCommit registers the hook fired after each committed transition.
// Wired to the UI scroll reset.
func (c *Controller) OnCommit(fn func(page string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCommit = fn
}

// Navigate requests a transition to target. A target outside the
// whitelist is a silent no-op and returns false.
//
// A second Navigate inside the commit window does not cancel the first;
// both commits fire and the last one wins.
func (c *Controller) Navigate(target string) bool {
	c.mu.Lock()
	if _, ok := c.pages[target]; !ok {
		c.mu.Unlock()
		c.logger.Debug("Rejected navigation target", "target", target)
		return false
	}

	leaveSearch := c.current == PageSearch && target != PageSearch && c.onLeaveSearch != nil
	c.loading = true
	c.menuOpen = false
	hook := c.onLeaveSearch
	c.mu.Unlock()

	if leaveSearch {
		hook()
	}

	time.AfterFunc(c.delay, func() {
		c.commit(target)
	})
	return true
}

func (c *Controller) commit(target string) {
	c.mu.Lock()
	c.current = target
	c.loading = false
	hook := c.onCommit
	c.mu.Unlock()

	c.logger.Debug("Navigation committed", "page", target)
	if hook != nil {
		hook(target)
	}
}

// OpenMenu opens the mobile menu.
func (c *Controller) OpenMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menuOpen = true
}

// CloseMenu closes the mobile menu.
func (c *Controller) CloseMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menuOpen = false
}

// Known reports whether target is in the whitelist.
func (c *Controller) Known(target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pages[target]
	return ok
}

// State returns the current navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Page: c.current, Loading: c.loading, MenuOpen: c.menuOpen}
}
