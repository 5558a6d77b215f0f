package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/GustavoCaso/storefront/internal/catalog"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/listing"
)

var timeLeftLabels = map[catalog.TimeLeft]string{
	catalog.TimeLeftEndingSoon: "Ending within 24 hours",
	catalog.TimeLeftEndingWeek: "Ending within 7 days",
	catalog.TimeLeftLive:       "Live",
	catalog.TimeLeftEnded:      "Ended",
}

var flagLabels = map[catalog.Flag]string{
	catalog.FlagFeatured: "Featured",
	catalog.FlagInStock:  "In stock",
	catalog.FlagTopRated: "Top rated",
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type facetGroup struct {
	Param   string
	Title   string
	Options []option
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type sortOption struct {
	Value    string
	Label    string
	URL      string
	Selected bool
}

type catalogViewData struct {
	viewBase
	Title    string
	Path     string
	State    catalog.State
	Result   catalog.Result
	Cards    []card
	Search   string
	MinPrice string
	MaxPrice string
	// PriceHint is the price range of the whole collection in its source currency.
	PriceHint string
	ShowPrice bool
	Groups    []facetGroup
	TimeLeft  []option
	Flags     []option
	Sorts     []sortOption
	Pages     []pageLink
	PrevURL   string
	NextURL   string
	ClearURL  string
}

type fact struct {
	Label string
	Value string
}

type detailViewData struct {
	viewBase
	Title    string
	Path     string
	Found    bool
	Slug     string
	Card     card
	Facts    []fact
	Featured bool
}

type catalogHandler struct {
	*router
	descriptor catalog.Descriptor
}

func newCatalogHandler(router *router, d catalog.Descriptor) *catalogHandler {
	return &catalogHandler{router: router, descriptor: d}
}

func (c *catalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+c.descriptor.Path, c.listPage)
	mux.HandleFunc("GET "+c.descriptor.Path+"/{slug}", c.detailPage)
}

func (c *catalogHandler) listPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := c.descriptor
	status := http.StatusOK

	base := c.newViewBase(r, string(d.Kind))

	state, err := catalog.ParseState(d, r.URL.Query())
	if err != nil {
		c.logger.Debug("Invalid catalog query", "path", d.Path, "error", err)
		base.Error = err.Error()
		status = http.StatusBadRequest
	}

	collection := c.source.Listings(ctx, d.Kind)
	base.noteOrigin(collection.Origin)

	result := catalog.Query(collection.Records, state.Filters, state.Sort, state.Pagination(), c.now())
	facets := catalog.BuildFacets(collection.Records)

	data := catalogViewData{
		viewBase:  base,
		Title:     d.Title,
		Path:      d.Path,
		State:     state,
		Result:    result,
		Cards:     c.cards(ctx, result.Page),
		Search:    state.Filters.Search,
		ShowPrice: d.Has(catalog.GroupPrice),
		ClearURL:  d.Path,
	}

	if state.Filters.PriceMin != nil {
		data.MinPrice = state.Filters.PriceMin.String()
	}
	if state.Filters.PriceMax != nil {
		data.MaxPrice = state.Filters.PriceMax.String()
	}
	if len(collection.Records) > 0 {
		data.PriceHint = fmt.Sprintf("%s to %s", facets.MinPrice.StringFixed(2), facets.MaxPrice.StringFixed(2))
	}

	data.Groups = facetGroups(state, facets)
	data.TimeLeft = timeLeftOptions(state)
	data.Flags = flagOptions(state)
	data.Sorts = sortOptions(state)
	data.Pages, data.PrevURL, data.NextURL = pageLinks(state, result)

	c.render(w, status, "pages/catalog.html", data)
}

func (c *catalogHandler) detailPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := c.descriptor
	slug := r.PathValue("slug")

	data := detailViewData{
		viewBase: c.newViewBase(r, string(d.Kind)),
		Title:    d.Title,
		Path:     d.Path,
		Slug:     slug,
	}

	record, origin, err := c.source.Listing(ctx, d.Kind, slug)
	data.noteOrigin(origin)

	if err != nil {
		if errors.Is(err, datasource.ErrNotFound) {
			c.render(w, http.StatusNotFound, "pages/detail.html", data)
			return
		}

		c.logger.Error("Failed to load listing", "collection", d.Kind.Collection(), "slug", slug, "error", err)
		data.Error = "We could not load this listing right now."
		c.render(w, http.StatusInternalServerError, "pages/detail.html", data)
		return
	}

	data.Found = true
	data.Card = c.cards(ctx, []listing.Record{record})[0]
	data.Featured = record.IsFeatured
	data.Facts = facts(d, data.Card)

	c.render(w, http.StatusOK, "pages/detail.html", data)
}

func facts(d catalog.Descriptor, c card) []fact {
	r := c.Record
	list := []fact{}

	add := func(label, value string) {
		if value != "" {
			list = append(list, fact{Label: label, Value: value})
		}
	}

	add("Category", r.Category)
	add(d.SellerLabel, r.Seller)
	add("Status", r.Status)
	add(c.SecondaryLabel, c.Secondary)
	add("Time left", c.TimeLeft)
	if r.BidCount != nil {
		add("Bids", strconv.Itoa(r.Bids()))
	}
	if r.StockQuantity != nil {
		add("In stock", strconv.Itoa(r.Stock()))
	}
	add("Rating", c.Rating)
	if r.CreatedAt != nil {
		add("Listed", r.CreatedAt.Format("2 Jan 2006"))
	}

	return list
}

func facetGroups(state catalog.State, facets catalog.Facets) []facetGroup {
	d := state.Descriptor
	groups := []facetGroup{}

	add := func(group catalog.Group, title string, values []string) {
		if !d.Has(group) || len(values) == 0 {
			return
		}

		options := make([]option, 0, len(values))
		for _, v := range values {
			options = append(options, option{Value: v, Label: v, Selected: state.Selected(string(group), v)})
		}
		groups = append(groups, facetGroup{Param: string(group), Title: title, Options: options})
	}

	add(catalog.GroupCategory, "Category", facets.Categories)
	add(catalog.GroupSeller, d.SellerLabel, facets.Sellers)
	add(catalog.GroupStatus, "Status", facets.Statuses)

	return groups
}

func timeLeftOptions(state catalog.State) []option {
	if !state.Descriptor.Has(catalog.GroupTimeLeft) {
		return nil
	}

	options := []option{{Value: "", Label: "Any time", Selected: state.Filters.TimeLeft == catalog.TimeLeftAny}}
	for _, bucket := range catalog.TimeLeftBuckets {
		options = append(options, option{
			Value:    string(bucket),
			Label:    timeLeftLabels[bucket],
			Selected: state.Filters.TimeLeft == bucket,
		})
	}
	return options
}

func flagOptions(state catalog.State) []option {
	if !state.Descriptor.Has(catalog.GroupFlags) {
		return nil
	}

	options := make([]option, 0, len(state.Descriptor.Flags))
	for _, flag := range state.Descriptor.Flags {
		options = append(options, option{
			Value:    string(flag),
			Label:    flagLabels[flag],
			Selected: state.Selected(string(catalog.GroupFlags), string(flag)),
		})
	}
	return options
}

func sortOptions(state catalog.State) []sortOption {
	options := make([]sortOption, 0, len(state.Descriptor.Sorts))
	for _, key := range state.Descriptor.Sorts {
		options = append(options, sortOption{
			Value:    string(key),
			Label:    key.Label(),
			URL:      state.SortURL(key),
			Selected: state.Sort == key,
		})
	}
	return options
}

// pageLinks builds the numbered links. Prev and next are empty at the
// boundaries so the template renders them disabled.
func pageLinks(state catalog.State, result catalog.Result) ([]pageLink, string, string) {
	pages := make([]pageLink, 0, result.TotalPages)
	for _, n := range result.Pages() {
		pages = append(pages, pageLink{Number: n, URL: state.PageURL(n), Current: n == result.CurrentPage})
	}

	var prev, next string
	if result.HasPrev() {
		prev = state.PageURL(min(result.PrevPage(), result.TotalPages))
	}
	if result.HasNext() {
		next = state.PageURL(result.NextPage())
	}

	return pages, prev, next
}
