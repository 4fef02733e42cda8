// Package notice separates the UI-notification concern from the state
// engines: engines return the events to announce, a Notifier decides how
// they surface (toast, log, nothing).
package notice

import "log/slog"

type Kind string

const (
	CartAdded       Kind = "cart_added"
	CartUpdated     Kind = "cart_updated"
	CartRemoved     Kind = "cart_removed"
	CartCleared     Kind = "cart_cleared"
	WishlistAdded   Kind = "wishlist_added"
	WishlistExists  Kind = "wishlist_exists"
	WishlistRemoved Kind = "wishlist_removed"
	WishlistCleared Kind = "wishlist_cleared"
	IdentitySignIn  Kind = "identity_signed_in"
	IdentitySignOut Kind = "identity_signed_out"
)

// Event is a single announcement produced by a state transition.
// Action is an optional UI hint, e.g. "view-cart" on a cart add.
type Event struct {
	ID      string `json:"id,omitempty"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// ActionViewCart tells the UI to offer a shortcut to the cart page.
const ActionViewCart = "view-cart"

// Notifier receives events after the mutation that produced them settled.
type Notifier interface {
	Notify(events ...Event)
}

// LogNotifier announces events to the structured log. The default sink
// when no UI channel is attached.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notice")}
}

func (n *LogNotifier) Notify(events ...Event) {
	for _, e := range events {
		n.logger.Info("Notice", "kind", e.Kind, "message", e.Message, "action", e.Action)
	}
}

// Recorder collects events in order. Test double.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Notify(events ...Event) {
	r.Events = append(r.Events, events...)
}
