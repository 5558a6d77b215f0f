package router

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/GustavoCaso/storefront/internal/catalog"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/listing"
)

const featuredPerSection = 4

type homeSection struct {
	Title string
	URL   string
	Cards []card
}

type homeViewData struct {
	viewBase
	Sections []homeSection
}

type homeHandler struct {
	*router
}

func (h *homeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.homePage)
}

// homePage loads every collection concurrently and shows its featured items.
func (h *homeHandler) homePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := homeViewData{
		viewBase: h.newViewBase(r, pageHome),
		Sections: make([]homeSection, len(listing.Kinds)),
	}
	origins := make([]datasource.Origin, len(listing.Kinds))

	// Listings never fails, so the loaders always return nil.
	var g errgroup.Group
	for i, kind := range listing.Kinds {
		g.Go(func() error {
			collection := h.source.Listings(ctx, kind)
			d := catalog.DescriptorFor(kind)

			origins[i] = collection.Origin
			data.Sections[i] = homeSection{
				Title: d.Title,
				URL:   d.Path,
				Cards: h.cards(ctx, featured(collection.Records, featuredPerSection)),
			}
			return nil
		})
	}

	_ = g.Wait()

	for _, origin := range origins {
		data.noteOrigin(origin)
	}

	h.render(w, http.StatusOK, "pages/home.html", data)
}

// featured returns up to n featured records, topped up with the first
// records when fewer are featured.
func featured(records []listing.Record, n int) []listing.Record {
	picked := make([]listing.Record, 0, n)
	used := make(map[int]bool, n)

	for i, r := range records {
		if len(picked) == n {
			break
		}
		if r.IsFeatured {
			picked = append(picked, r)
			used[i] = true
		}
	}

	for i, r := range records {
		if len(picked) == n {
			break
		}
		if !used[i] {
			picked = append(picked, r)
		}
	}

	return picked
}
