package router

import (
	"context"
	"net/http"
	"time"

	"github.com/GustavoCaso/storefront/internal/catalog"
	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/currency"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/logger"
)

// Source supplies listings to the pages.
type Source interface {
	Listings(ctx context.Context, kind listing.Kind) datasource.Collection
	Listing(ctx context.Context, kind listing.Kind, slug string) (listing.Record, datasource.Origin, error)
}

type routeRegisterer interface {
	RegisterRoutes(mux *http.ServeMux)
}

type router struct {
	reload          bool
	templates       *templates
	source          Source
	converter       *currency.Converter
	defaultCurrency string
	logger          *logger.Logger
	now             func() time.Time
}

//nolint:revive // We return the private router struct to allow testing some internal functions
func New(conf *config.Config, source Source, converter *currency.Converter, logger *logger.Logger) (http.Handler, *router) {
	router := &router{
		reload:          conf.Server.LiveReload,
		templates:       &templates{},
		source:          source,
		converter:       converter,
		defaultCurrency: conf.Currency.Default,
		logger:          logger,
		now:             time.Now,
	}

	parseError := router.parseTemplates()
	if parseError != nil {
		logger.Fatal("error parsing templates", "error", parseError.Error())
	}

	mux := &http.ServeMux{}

	handlers := []routeRegisterer{
		&homeHandler{router},
		&currencyHandler{router},
	}
	for _, kind := range listing.Kinds {
		handlers = append(handlers, newCatalogHandler(router, catalog.DescriptorFor(kind)))
	}

	for _, h := range handlers {
		h.RegisterRoutes(mux)
	}

	mux.HandleFunc("/", router.notFoundHandler)

	// wrap entire mux with middlewares
	handler := currencyMiddleware(router, mux)
	if router.reload {
		handler = liveReloadMiddleware(router, handler)
	}
	if !conf.Server.AllowEmbedding {
		handler = xFrameDenyHeaderMiddleware(handler)
	}
	handler = loggingMiddleware(logger, handler)
	handler = requestIDMiddleware(handler)

	return handler, router
}

func (router *router) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	data := notFoundViewData{
		viewBase: router.newViewBase(r, ""),
		Path:     r.URL.Path,
	}

	router.render(w, http.StatusNotFound, "pages/not_found.html", data)
}

// render writes the page, or a plain 500 when the template fails.
func (router *router) render(w http.ResponseWriter, status int, name string, data any) {
	if err := router.templates.Render(w, status, name, data); err != nil {
		router.logger.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
