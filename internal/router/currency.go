package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/GustavoCaso/storefront/internal/currency"
)

const currencyCookieAge = 365 * 24 * time.Hour

type currencyHandler struct {
	*router
}

func (c *currencyHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /currency", c.selectCurrency)
}

// selectCurrency remembers the display currency and sends the shopper back to
// the page they came from.
func (c *currencyHandler) selectCurrency(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.logger.Warn("Failed to parse currency form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	info, ok := currency.Lookup(r.FormValue("currency"))
	if !ok {
		c.logger.Warn("Unsupported currency selected", "currency", r.FormValue("currency"))
		http.Error(w, "Unsupported currency", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     currencyCookie,
		Value:    info.Code,
		Path:     "/",
		MaxAge:   int(currencyCookieAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, safeRedirect(r.FormValue("redirect")), http.StatusSeeOther)
}

// safeRedirect only allows local paths.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
