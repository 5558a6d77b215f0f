package router

import (
	"net/http"

	"github.com/GustavoCaso/storefront/internal/catalog"
	"github.com/GustavoCaso/storefront/internal/currency"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/listing"
)

const pageHome = "home"

type banner struct {
	Icon    string
	Message string
}

type navLink struct {
	Title  string
	URL    string
	Active bool
}

type viewBase struct {
	Error       string
	Banner      banner
	CurrentPage string
	Nav         []navLink
	Currency    string
	Currencies  []currency.Info
	// RedirectTo brings the shopper back here after changing currency.
	RedirectTo string
	RequestID  string
}

var fallbackBanner = banner{
	Icon:    "⚠",
	Message: "The catalog service is unavailable. Showing sample listings.",
}

func (router *router) newViewBase(r *http.Request, currentPage string) viewBase {
	ctx := r.Context()

	nav := []navLink{{Title: "Home", URL: "/", Active: currentPage == pageHome}}
	for _, kind := range listing.Kinds {
		d := catalog.DescriptorFor(kind)
		nav = append(nav, navLink{Title: d.Title, URL: d.Path, Active: currentPage == string(kind)})
	}

	return viewBase{
		CurrentPage: currentPage,
		Nav:         nav,
		Currency:    currency.FromContext(ctx).Code(),
		Currencies:  currency.Supported,
		RedirectTo:  r.URL.RequestURI(),
		RequestID:   requestIDFromContext(ctx),
	}
}

// noteOrigin shows the fallback banner when listings did not come from the backend
// because it failed.
func (v *viewBase) noteOrigin(origin datasource.Origin) {
	if origin == datasource.OriginFallback {
		v.Banner = fallbackBanner
	}
}

type notFoundViewData struct {
	viewBase
	Path string
}
