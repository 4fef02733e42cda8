// Package rest exposes the session engine to the UI layer over JSON/HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/threadcount/storefront/internal/cart"
	"github.com/threadcount/storefront/internal/catalog"
	"github.com/threadcount/storefront/internal/nav"
	"github.com/threadcount/storefront/internal/notice"
	"github.com/threadcount/storefront/internal/search"
	"github.com/threadcount/storefront/internal/session"
	"github.com/threadcount/storefront/internal/wishlist"
	"github.com/threadcount/storefront/pkg/web"
)

// Catalog is the product collaborator surface the handler depends on.
type Catalog interface {
	List(ctx context.Context, category string) ([]catalog.Product, error)
	Create(ctx context.Context, p catalog.Product) (*catalog.Product, error)
	Update(ctx context.Context, p catalog.Product) (*catalog.Product, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	session  *session.Session
	searcher *search.Searcher
	nav      *nav.Controller
	catalog  Catalog
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates the storefront API handler.
func NewHandler(s *session.Session, searcher *search.Searcher, navCtrl *nav.Controller, cat Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		session:  s,
		searcher: searcher,
		nav:      navCtrl,
		catalog:  cat,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the storefront engine.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/lines", h.AddCartLine)
			r.Put("/lines/quantity", h.SetCartQuantity)
			r.Delete("/lines/{id}", h.RemoveCartLine)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.GetWishlist)
			r.Delete("/", h.ClearWishlist)
			r.Post("/items", h.AddWishlistItem)
			r.Get("/items/{id}", h.ContainsWishlistItem)
			r.Delete("/items/{id}", h.RemoveWishlistItem)
		})
		r.Route("/search", func(r chi.Router) {
			r.Get("/", h.GetSearch)
			r.Put("/query", h.SetSearchQuery)
		})
		r.Route("/nav", func(r chi.Router) {
			r.Get("/", h.GetNav)
			r.Post("/navigate", h.Navigate)
			r.Put("/menu", h.SetMenu)
		})
		r.Route("/identity", func(r chi.Router) {
			r.Get("/", h.GetIdentity)
			r.Put("/", h.SetIdentity)
			r.Delete("/", h.ClearIdentity)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// cartLineDto carries an add-to-cart request. Size and color are
// required up front: a missing size is a user error rejected before any
// mutation, not a silent default.
type cartLineDto struct {
	ID        string `json:"id"        validate:"required"`
	Name      string `json:"name"      validate:"required,max=200"`
	UnitPrice int64  `json:"unitPrice" validate:"gte=0"`
	Image     string `json:"image"`
	Size      string `json:"size"      validate:"required"`
	Color     string `json:"color"     validate:"required"`
	Category  string `json:"category"`
}

type quantityDto struct {
	ID       string `json:"id"       validate:"required"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity *int   `json:"quantity" validate:"required"`
}

type wishlistEntryDto struct {
	ID          string `json:"id"    validate:"required"`
	Name        string `json:"name"  validate:"required,max=200"`
	Price       int64  `json:"price" validate:"gte=0"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type queryDto struct {
	Query string `json:"query"`
}

type navigateDto struct {
	Target string `json:"target" validate:"required"`
}

type menuDto struct {
	Open bool `json:"open"`
}

type identityDto struct {
	ID       string `json:"id"       validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Avatar   string `json:"avatar"`
	Provider string `json:"provider" validate:"required"`
}

type cartResponse struct {
	session.CartView
	Notices []notice.Event `json:"notices,omitempty"`
}

type wishlistResponse struct {
	session.WishlistView
	Notices []notice.Event `json:"notices,omitempty"`
}

type navigateResponse struct {
	Accepted bool      `json:"accepted"`
	State    nav.State `json:"state"`
}

// GetCart returns the cart view with recomputed totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, cartResponse{CartView: h.session.Cart()})
}

// AddCartLine merges an item into the cart.
func (h *Handler) AddCartLine(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto cartLineDto
	if !h.decodeValid(w, r, mLogger, &dto) {
		return
	}
	view, events := h.session.AddToCart(r.Context(), cart.Item{
		ProductID: dto.ID,
		Name:      dto.Name,
		UnitPrice: dto.UnitPrice,
		Image:     dto.Image,
		Size:      dto.Size,
		Color:     dto.Color,
		Category:  dto.Category,
	})
	mLogger.InfoContext(r.Context(), "Cart line added", "ID", dto.ID, "Size", dto.Size, "Color", dto.Color)
	web.RespondJSON(w, mLogger, http.StatusCreated, cartResponse{CartView: view, Notices: events})
}

// SetCartQuantity replaces a line's quantity; zero or less removes the line.
func (h *Handler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto quantityDto
	if !h.decodeValid(w, r, mLogger, &dto) {
		return
	}
	key := cart.Key{ProductID: dto.ID, Size: dto.Size, Color: dto.Color}
	view, events := h.session.SetCartQuantity(r.Context(), key, *dto.Quantity)
	mLogger.DebugContext(r.Context(), "Cart quantity set", "ID", dto.ID, "Quantity", *dto.Quantity)
	web.RespondJSON(w, mLogger, http.StatusOK, cartResponse{CartView: view, Notices: events})
}

// RemoveCartLine deletes a line. Removing an absent line is a no-op and
// still returns the (unchanged) cart.
func (h *Handler) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	key := cart.Key{
		ProductID: chi.URLParam(r, "id"),
		Size:      r.URL.Query().Get("size"),
		Color:     r.URL.Query().Get("color"),
	}
	view, events := h.session.RemoveFromCart(r.Context(), key)
	mLogger.DebugContext(r.Context(), "Cart line removed", "ID", key.ProductID)
	web.RespondJSON(w, mLogger, http.StatusOK, cartResponse{CartView: view, Notices: events})
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	view, events := h.session.ClearCart(r.Context())
	mLogger.InfoContext(r.Context(), "Cart cleared")
	web.RespondJSON(w, mLogger, http.StatusOK, cartResponse{CartView: view, Notices: events})
}

// GetWishlist returns the wishlist view.
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, wishlistResponse{WishlistView: h.session.Wishlist()})
}

// AddWishlistItem saves an entry; duplicate adds are idempotent.
func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto wishlistEntryDto
	if !h.decodeValid(w, r, mLogger, &dto) {
		return
	}
	view, events := h.session.AddToWishlist(r.Context(), wishlist.Entry{
		ProductID:   dto.ID,
		Name:        dto.Name,
		Price:       dto.Price,
		Image:       dto.Image,
		Category:    dto.Category,
		Description: dto.Description,
	})
	mLogger.InfoContext(r.Context(), "Wishlist item added", "ID", dto.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, wishlistResponse{WishlistView: view, Notices: events})
}

// ContainsWishlistItem reports membership; the UI uses it to toggle the
// heart icon.
func (h *Handler) ContainsWishlistItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, map[string]bool{"saved": h.session.InWishlist(id)})
}

// RemoveWishlistItem deletes an entry; absent IDs no-op.
func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")
	view, events := h.session.RemoveFromWishlist(r.Context(), id)
	mLogger.DebugContext(r.Context(), "Wishlist item removed", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, wishlistResponse{WishlistView: view, Notices: events})
}

// ClearWishlist empties the wishlist.
func (h *Handler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	view, events := h.session.ClearWishlist(r.Context())
	mLogger.InfoContext(r.Context(), "Wishlist cleared")
	web.RespondJSON(w, mLogger, http.StatusOK, wishlistResponse{WishlistView: view, Notices: events})
}

// GetSearch returns the current search state.
func (h *Handler) GetSearch(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, h.searcher.Result())
}

// SetSearchQuery registers a keystroke. The lookup itself is debounced;
// the response only acknowledges the query change.
func (h *Handler) SetSearchQuery(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto queryDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.searcher.SetQuery(dto.Query)
	web.RespondJSON(w, mLogger, http.StatusAccepted, map[string]string{"query": dto.Query})
}

// GetNav returns the current navigation state.
func (h *Handler) GetNav(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, h.nav.State())
}

// Navigate requests a page transition. An unknown target is a silent
// no-op: the unchanged state is returned with accepted=false.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto navigateDto
	if !h.decodeValid(w, r, mLogger, &dto) {
		return
	}
	accepted := h.nav.Navigate(dto.Target)
	if !accepted {
		mLogger.DebugContext(r.Context(), "Navigation target rejected", "target", dto.Target)
	}
	web.RespondJSON(w, mLogger, http.StatusOK, navigateResponse{Accepted: accepted, State: h.nav.State()})
}

// SetMenu opens or closes the mobile menu.
func (h *Handler) SetMenu(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto menuDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if dto.Open {
		h.nav.OpenMenu()
	} else {
		h.nav.CloseMenu()
	}
	web.RespondJSON(w, mLogger, http.StatusOK, h.nav.State())
}

// GetIdentity returns the signed-in identity, or null when signed out.
func (h *Handler) GetIdentity(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, h.session.Identity())
}

// SetIdentity installs the identity record issued by the identity
// collaborator.
func (h *Handler) SetIdentity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto identityDto
	if !h.decodeValid(w, r, mLogger, &dto) {
		return
	}
	events := h.session.SetIdentity(r.Context(), session.Identity{
		ID:       dto.ID,
		Email:    dto.Email,
		Name:     dto.Name,
		Avatar:   dto.Avatar,
		Provider: dto.Provider,
	})
	mLogger.InfoContext(r.Context(), "Identity set", "ID", dto.ID, "Provider", dto.Provider)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{"identity": h.session.Identity(), "notices": events})
}

// ClearIdentity signs the user out.
func (h *Handler) ClearIdentity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	events := h.session.ClearIdentity(r.Context())
	mLogger.InfoContext(r.Context(), "Identity cleared")
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{"identity": nil, "notices": events})
}

// ListProducts proxies the collaborator's read path for category pages.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	category := r.URL.Query().Get("category")
	products, err := h.catalog.List(r.Context(), category)
	if err != nil {
		// Read paths degrade to empty rather than blocking the page.
		mLogger.WarnContext(r.Context(), "Catalog list failed, returning empty", "category", category, "error", err)
		products = []catalog.Product{}
	}
	web.RespondJSON(w, mLogger, http.StatusOK, products)
}

// CreateProduct is the admin passthrough for product creation. Requires
// a signed-in identity.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	if !h.requireIdentity(w, mLogger) {
		return
	}
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.catalog.Create(r.Context(), p)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusBadGateway, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// UpdateProduct is the admin passthrough for product updates.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	if !h.requireIdentity(w, mLogger) {
		return
	}
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.ID = chi.URLParam(r, "id")
	updated, err := h.catalog.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", p.ID))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", p.ID, "error", err)
		web.RespondError(w, mLogger, http.StatusBadGateway, "Failed to update product")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteProduct is the admin passthrough for product deletion.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	if !h.requireIdentity(w, mLogger) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusBadGateway, "Failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// requireIdentity gates the admin surface: product writes need a
// signed-in identity.
func (h *Handler) requireIdentity(w http.ResponseWriter, mLogger *slog.Logger) bool {
	if h.session.Identity() == nil {
		web.RespondError(w, mLogger, http.StatusUnauthorized, "Sign in required")
		return false
	}
	return true
}

// decodeValid decodes the body into dto and validates it, responding
// with the field-error map on failure.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto any) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
