package nav

import (
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func Test_Controller_RejectsUnknownTarget(t *testing.T) {
	// given
	c := NewController(50*time.Millisecond, testLogger())
	c.OpenMenu()

	// when
	accepted := c.Navigate("not-a-real-page")

	// then: page, loading flag, and menu state are all unchanged
	assert.False(t, accepted)
	state := c.State()
	assert.Equal(t, PageHome, state.Page)
	assert.False(t, state.Loading)
	assert.True(t, state.MenuOpen)
}

func Test_Controller_TwoPhaseTransition(t *testing.T) {
	// given
	c := NewController(50*time.Millisecond, testLogger())
	c.OpenMenu()
	var committed atomic.Value
	c.OnCommit(func(page string) { committed.Store(page) })

	// when
	accepted := c.Navigate(PageCart)

	// then: request phase is immediate
	require.True(t, accepted)
	state := c.State()
	assert.True(t, state.Loading)
	assert.False(t, state.MenuOpen)
	assert.Equal(t, PageHome, state.Page, "page swaps only at commit")

	// and the commit lands after the delay
	require.Eventually(t, func() bool {
		s := c.State()
		return s.Page == PageCart && !s.Loading
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, PageCart, committed.Load())
}

func Test_Controller_LeavingSearchClearsQuery(t *testing.T) {
	// given: sitting on the search page with an active query
	c := NewController(20*time.Millisecond, testLogger())
	var cleared atomic.Bool
	c.OnLeaveSearch(func() { cleared.Store(true) })
	require.True(t, c.Navigate(PageSearch))
	require.Eventually(t, func() bool {
		return c.State().Page == PageSearch
	}, time.Second, 5*time.Millisecond)

	// when
	require.True(t, c.Navigate(PageCart))

	// then: the reset hook fired before the commit
	assert.True(t, cleared.Load())
	require.Eventually(t, func() bool {
		s := c.State()
		return s.Page == PageCart && !s.Loading
	}, time.Second, 5*time.Millisecond)
}

func Test_Controller_SearchToSearchKeepsQuery(t *testing.T) {
	// given
	c := NewController(10*time.Millisecond, testLogger())
	var cleared atomic.Bool
	c.OnLeaveSearch(func() { cleared.Store(true) })
	require.True(t, c.Navigate(PageSearch))
	require.Eventually(t, func() bool {
		return c.State().Page == PageSearch
	}, time.Second, 5*time.Millisecond)

	// when: navigating to the search page again
	require.True(t, c.Navigate(PageSearch))

	// then
	assert.False(t, cleared.Load())
}

func Test_Controller_SecondNavigateWinsTheRace(t *testing.T) {
	// given: two requests inside one commit window; no cancellation,
	// the later commit wins
	c := NewController(60*time.Millisecond, testLogger())

	// when
	require.True(t, c.Navigate(PageCart))
	time.Sleep(20 * time.Millisecond)
	require.True(t, c.Navigate(PageWishlist))

	// then
	require.Eventually(t, func() bool {
		s := c.State()
		return s.Page == PageWishlist && !s.Loading
	}, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, PageWishlist, c.State().Page)
}

func Test_Controller_WhitelistCoversStorePages(t *testing.T) {
	// given
	c := NewController(10*time.Millisecond, testLogger())

	// then
	for _, page := range []string{
		PageHome, PageCart, PageWishlist, PageSearch, PageAuth, PageAccount,
		PageAdmin, PageSizeGuide, "men", "women-dresses", "accessories-bags",
	} {
		assert.True(t, c.Known(page), page)
	}
	assert.False(t, c.Known("checkout-v2"))
	assert.False(t, c.Known(""))
}

func Test_Controller_MenuToggles(t *testing.T) {
	// given
	c := NewController(10*time.Millisecond, testLogger())

	// when / then
	c.OpenMenu()
	assert.True(t, c.State().MenuOpen)
	c.CloseMenu()
	assert.False(t, c.State().MenuOpen)
}
