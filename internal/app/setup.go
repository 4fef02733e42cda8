// Package app contains the application setup for the storefront engine.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/threadcount/storefront/internal/catalog"
	"github.com/threadcount/storefront/internal/config"
	"github.com/threadcount/storefront/internal/nav"
	"github.com/threadcount/storefront/internal/notice"
	"github.com/threadcount/storefront/internal/search"
	"github.com/threadcount/storefront/internal/session"
	"github.com/threadcount/storefront/internal/storage"
	"github.com/threadcount/storefront/internal/transport/rest"
	"github.com/threadcount/storefront/pkg/server"
)

type Dependencies struct {
	Session  *session.Session
	Searcher *search.Searcher
	Nav      *nav.Controller
	Catalog  *catalog.Client
	Logger   *slog.Logger
}

func SetupDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Dependencies {
	store := storage.NewFileStore(cfg.Storage.Dir, cfg.Storage.Namespace, logger)
	notifier := notice.NewLogNotifier(logger)
	sess := session.New(ctx, store, notifier, logger)

	cat := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)
	searcher := search.NewSearcher(cat, cfg.Search.Debounce, cfg.Search.MaxResults, logger)

	navCtrl := nav.NewController(cfg.Nav.CommitDelay, logger)
	// Leaving the search page drops the query; every commit resets scroll
	// on the UI side, which we only note here.
	navCtrl.OnLeaveSearch(searcher.Reset)
	navCtrl.OnCommit(func(page string) {
		logger.Debug("Scroll reset", "page", page)
	})

	return &Dependencies{
		Session:  sess,
		Searcher: searcher,
		Nav:      navCtrl,
		Catalog:  cat,
		Logger:   logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the storefront engine.
// Used by handler tests to set up the server with the full middleware stack.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront engine.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Session, deps.Searcher, deps.Nav, deps.Catalog, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server for the
// storefront engine.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
