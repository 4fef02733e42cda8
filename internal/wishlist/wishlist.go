// Package wishlist implements the saved-items state engine. Membership is
// keyed by product ID alone; adds are idempotent.
package wishlist

import (
	"fmt"

	"github.com/threadcount/storefront/internal/notice"
)

// Entry is a saved product reference. Price is integer cents.
type Entry struct {
	ProductID   string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Wishlist holds entries in insertion order. Not safe for concurrent
// use; the session container serializes access.
type Wishlist struct {
	entries []Entry
}

func New() *Wishlist {
	return &Wishlist{}
}

// Restore rebuilds a wishlist from a persisted snapshot, dropping
// duplicate IDs so a loosely validated snapshot cannot introduce them.
func Restore(entries []Entry) *Wishlist {
	w := New()
	for _, e := range entries {
		if w.Contains(e.ProductID) {
			continue
		}
		w.entries = append(w.entries, e)
	}
	return w
}

// Add inserts the entry unless its ID is already present. A repeated add
// does not mutate and announces with distinct wording, so rapid re-clicks
// of a heart icon cannot create duplicates or spurious "added" toasts.
func (w *Wishlist) Add(e Entry) notice.Event {
	if w.Contains(e.ProductID) {
		return notice.Event{
			Kind:    notice.WishlistExists,
			Message: fmt.Sprintf("%s is already in your wishlist", e.Name),
		}
	}
	w.entries = append(w.entries, e)
	return notice.Event{
		Kind:    notice.WishlistAdded,
		Message: fmt.Sprintf("%s added to wishlist", e.Name),
	}
}

// Remove deletes the entry with the given ID. Removing an absent ID is a
// no-op and returns nil.
func (w *Wishlist) Remove(id string) *notice.Event {
	for i, e := range w.entries {
		if e.ProductID == id {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return &notice.Event{
				Kind:    notice.WishlistRemoved,
				Message: fmt.Sprintf("%s removed from wishlist", e.Name),
			}
		}
	}
	return nil
}

// Clear empties the wishlist. Clearing an empty wishlist is a no-op.
func (w *Wishlist) Clear() *notice.Event {
	if len(w.entries) == 0 {
		return nil
	}
	w.entries = nil
	return &notice.Event{
		Kind:    notice.WishlistCleared,
		Message: "Wishlist cleared",
	}
}

// Contains reports membership without side effects. The UI uses it to
// toggle the heart icon.
func (w *Wishlist) Contains(id string) bool {
	for _, e := range w.entries {
		if e.ProductID == id {
			return true
		}
	}
	return false
}

// Entries returns a copy of the entries in insertion order.
func (w *Wishlist) Entries() []Entry {
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Count returns the number of saved entries.
func (w *Wishlist) Count() int {
	return len(w.entries)
}
