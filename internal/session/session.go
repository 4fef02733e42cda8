// Package session is the composition root for commerce state: it owns the
// cart, wishlist, and identity record for the lifetime of a session,
// serializes access to them, and write-throughs every mutation to the
// snapshot store.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/threadcount/storefront/internal/cart"
	"github.com/threadcount/storefront/internal/notice"
	"github.com/threadcount/storefront/internal/storage"
	"github.com/threadcount/storefront/internal/wishlist"
)

// Identity is the signed-in user record issued by the identity
// collaborator. Display and admin gating only.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Provider string `json:"provider"`
}

// CartView is the read model of the cart. Totals are recomputed on every
// read, never cached.
type CartView struct {
	Lines []cart.Line `json:"lines"`
	Total int64       `json:"total"`
	Count int         `json:"count"`
}

// WishlistView is the read model of the wishlist.
type WishlistView struct {
	Entries []wishlist.Entry `json:"entries"`
	Count   int              `json:"count"`
}

// Session combines the state engines behind a single locked surface.
// Only Session methods may mutate the collections.
type Session struct {
	logger   *slog.Logger
	store    storage.Store
	notifier notice.Notifier

	mu       sync.Mutex
	cart     *cart.Cart
	wishlist *wishlist.Wishlist
	identity *Identity
}

// New builds a session, restoring cart, wishlist, and identity from the
// snapshot store. Missing or corrupt snapshots restore as empty.
func New(ctx context.Context, store storage.Store, notifier notice.Notifier, logger *slog.Logger) *Session {
	s := &Session{
		logger:   logger.With("component", "session"),
		store:    store,
		notifier: notifier,
	}

	var lines []cart.Line
	store.Load(ctx, storage.KeyCart, &lines)
	s.cart = cart.Restore(lines)

	var entries []wishlist.Entry
	store.Load(ctx, storage.KeyWishlist, &entries)
	s.wishlist = wishlist.Restore(entries)

	var id *Identity
	if store.Load(ctx, storage.KeyIdentity, &id) {
		s.identity = id
	}
	return s
}

// AddToCart merges the item into the cart.
func (s *Session) AddToCart(ctx context.Context, item cart.Item) (CartView, []notice.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.cart.Add(item)
	s.persistCart(ctx)
	return s.cartView(), s.dispatch(ev)
}

// RemoveFromCart deletes the line identified by key; absent keys no-op.
func (s *Session) RemoveFromCart(ctx context.Context, key cart.Key) (CartView, []notice.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.cart.Remove(key)
	s.persistCart(ctx)
	return s.cartView(), s.dispatchOpt(ev)
}

// SetCartQuantity replaces a line's quantity; zero or less removes it.
func (s *Session) SetCartQuantity(ctx context.Context, key cart.Key, quantity int) (CartView, []notice.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.cart.SetQuantity(key, quantity)
	s.persistCart(ctx)
	return s.cartView(), s.dispatchOpt(ev)
}

// ClearCart empties the cart.
func (s *Session) ClearCart(ctx context.Context) (CartView, []notice.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.cart.Clear()
	s.persistCart(ctx)
	return s.cartView(), s.dispatchOpt(ev)
}

// Cart returns the current cart view.
func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

// AddToWishlist saves the entry; a duplicate add is a no-op announced
// with distinct wording.
func (s *Session) AddToWishlist(ctx context.Context, e wishlist.Entry) (WishlistView, []notice.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.wishlist.Add(e)
	s.persistWishlist(ctx)
	return s.wishlistView(), s.dispatch(ev)
}

// RemoveFromWishlist deletes the entry with the given ID; absent IDs no-op.
func (s *Session) RemoveFromWishlist(ctx context.Context, id string) (WishlistView, []notice.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.wishlist.Remove(id)
	s.persistWishlist(ctx)
	return s.wishlistView(), s.dispatchOpt(ev)
}

// ClearWishlist empties the wishlist.
func (s *Session) ClearWishlist(ctx context.Context) (WishlistView, []notice.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.wishlist.Clear()
	s.persistWishlist(ctx)
	return s.wishlistView(), s.dispatchOpt(ev)
}

// Wishlist returns the current wishlist view.
func (s *Session) Wishlist() WishlistView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistView()
}

// InWishlist reports membership without side effects.
func (s *Session) InWishlist(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(id)
}

// SetIdentity installs the identity record issued by the identity
// collaborator.
func (s *Session) SetIdentity(ctx context.Context, id Identity) []notice.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &id
	if err := s.store.Save(ctx, storage.KeyIdentity, s.identity); err != nil {
		s.logger.Error("Failed to persist identity snapshot", "error", err)
	}
	return s.dispatch(notice.Event{
		Kind:    notice.IdentitySignIn,
		Message: "Signed in as " + id.Name,
	})
}

// ClearIdentity signs the user out and removes the persisted record.
func (s *Session) ClearIdentity(ctx context.Context) []notice.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	s.identity = nil
	if err := s.store.Delete(ctx, storage.KeyIdentity); err != nil {
		s.logger.Error("Failed to delete identity snapshot", "error", err)
	}
	return s.dispatch(notice.Event{
		Kind:    notice.IdentitySignOut,
		Message: "Signed out",
	})
}

// Identity returns the current identity record, or nil when signed out.
func (s *Session) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// persistCart write-throughs the full cart snapshot. A save failure is
// logged and never rolls back the in-memory mutation; the session state
// remains the source of truth.
func (s *Session) persistCart(ctx context.Context) {
	if err := s.store.Save(ctx, storage.KeyCart, s.cart.Lines()); err != nil {
		s.logger.Error("Failed to persist cart snapshot", "error", err)
	}
}

func (s *Session) persistWishlist(ctx context.Context) {
	if err := s.store.Save(ctx, storage.KeyWishlist, s.wishlist.Entries()); err != nil {
		s.logger.Error("Failed to persist wishlist snapshot", "error", err)
	}
}

func (s *Session) cartView() CartView {
	return CartView{Lines: s.cart.Lines(), Total: s.cart.Total(), Count: s.cart.Count()}
}

func (s *Session) wishlistView() WishlistView {
	return WishlistView{Entries: s.wishlist.Entries(), Count: s.wishlist.Count()}
}

func (s *Session) dispatch(events ...notice.Event) []notice.Event {
	for i := range events {
		events[i].ID = uuid.NewString()
	}
	s.notifier.Notify(events...)
	return events
}

func (s *Session) dispatchOpt(ev *notice.Event) []notice.Event {
	if ev == nil {
		return nil
	}
	return s.dispatch(*ev)
}
