package router

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GustavoCaso/storefront/internal/catalog"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/fixtures"
	"github.com/GustavoCaso/storefront/internal/listing"
)

// expectedSlugs runs the query engine directly over the fixtures.
func expectedSlugs(t *testing.T, kind listing.Kind, rawQuery string) []string {
	t.Helper()

	d := catalog.DescriptorFor(kind)
	params, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	state, err := catalog.ParseState(d, params)
	require.NoError(t, err)

	records, err := fixtures.Load(kind, fixtures.Epoch)
	require.NoError(t, err)

	result := catalog.Query(records, state.Filters, state.Sort, state.Pagination(), fixtures.Epoch)
	slugs := []string{}
	for _, r := range result.Page {
		slugs = append(slugs, r.Slug)
	}
	return slugs
}

func TestCatalogListPages(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	for _, kind := range listing.Kinds {
		d := catalog.DescriptorFor(kind)
		t.Run(d.Title, func(t *testing.T) {
			w := get(t, handler, d.Path)
			require.Equal(t, http.StatusOK, w.Code)

			doc := parseDocument(t, w.Body)
			assert.Equal(t, d.Title, strings.TrimSpace(doc.Find("main h1").First().Text()))
			assert.Equal(t, expectedSlugs(t, kind, ""), cardSlugs(doc))
			assert.Equal(t, 0, doc.Find(".error").Length())
			assert.Equal(t, 0, doc.Find(".banner").Length())
			assert.Equal(t, 1, doc.Find("nav a.active").Length())
		})
	}
}

func TestCatalogFiltersAndSort(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	tests := []struct {
		name  string
		kind  listing.Kind
		query string
	}{
		{name: "sorted by price high", kind: listing.KindAuction, query: "sort=price-high"},
		{name: "most bids", kind: listing.KindAuction, query: "sort=most-bids"},
		{name: "in stock products", kind: listing.KindProduct, query: "flag=in-stock"},
		{name: "featured vehicles", kind: listing.KindVehicle, query: "flag=featured&sort=price-low"},
		{name: "price range", kind: listing.KindProperty, query: "min_price=100000&max_price=900000"},
		{name: "search", kind: listing.KindVehicle, query: "q=ford"},
		{name: "ending soon", kind: listing.KindAuction, query: "time_left=ending-soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, handler, catalog.DescriptorFor(tt.kind).Path+"?"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			doc := parseDocument(t, w.Body)
			expected := expectedSlugs(t, tt.kind, tt.query)
			assert.Equal(t, expected, cardSlugs(doc))
			if len(expected) == 0 {
				assert.Equal(t, 1, doc.Find(".empty").Length())
			}
		})
	}
}

func TestCatalogKeepsFilterControlsChecked(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	w := get(t, handler, "/shop?flag=in-stock&q=lamp&min_price=10&sort=price-low")
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseDocument(t, w.Body)

	_, checked := doc.Find(`input[name="flag"][value="in-stock"]`).Attr("checked")
	assert.True(t, checked)
	_, checked = doc.Find(`input[name="flag"][value="featured"]`).Attr("checked")
	assert.False(t, checked)

	assert.Equal(t, "lamp", doc.Find(`input[name="q"]`).AttrOr("value", ""))
	assert.Equal(t, "10", doc.Find(`input[name="min_price"]`).AttrOr("value", ""))
	assert.Equal(t, "price-low", doc.Find(`input[name="sort"]`).AttrOr("value", ""))
	assert.Equal(t, "Price: low to high", strings.TrimSpace(doc.Find("strong.sort.current").Text()))

	// products expose no status or time left filters
	assert.Equal(t, 0, doc.Find(`[data-group="status"]`).Length())
	assert.Equal(t, 0, doc.Find(`[data-group="time_left"]`).Length())
	assert.Equal(t, 1, doc.Find(`[data-group="seller"]`).Length())
}

func TestCatalogSortLinksResetPage(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	w := get(t, handler, "/auctions?page=2")
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseDocument(t, w.Body)

	assert.Equal(t, "Ending soon", strings.TrimSpace(doc.Find("strong.sort.current").Text()))

	links := map[string]string{}
	doc.Find("a.sort").Each(func(_ int, s *goquery.Selection) {
		links[strings.TrimSpace(s.Text())] = s.AttrOr("href", "")
	})
	assert.Equal(t, "/auctions?sort=newest", links["Newest"])
	assert.Equal(t, "/auctions?sort=most-bids", links["Most bids"])
	assert.Len(t, links, len(catalog.DescriptorFor(listing.KindAuction).Sorts)-1)
}

func TestCatalogPagination(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	t.Run("first page", func(t *testing.T) {
		doc := parseDocument(t, get(t, handler, "/auctions").Body)

		assert.Len(t, cardSlugs(doc), catalog.DefaultPageSize)
		assert.Equal(t, 1, doc.Find("span.prev.disabled").Length())
		assert.Equal(t, "/auctions?page=2", doc.Find("a.next").AttrOr("href", ""))
		assert.Equal(t, "1", doc.Find(".page.current").Text())
		assert.Equal(t, 2, doc.Find(".pagination .page").Length())
	})

	t.Run("last page", func(t *testing.T) {
		doc := parseDocument(t, get(t, handler, "/auctions?page=2").Body)

		assert.Len(t, cardSlugs(doc), 2)
		assert.Equal(t, "/auctions", doc.Find("a.prev").AttrOr("href", ""))
		assert.Equal(t, 1, doc.Find("span.next.disabled").Length())
		assert.Equal(t, "2", doc.Find(".page.current").Text())
	})

	t.Run("past the end", func(t *testing.T) {
		w := get(t, handler, "/auctions?page=5")
		require.Equal(t, http.StatusOK, w.Code)
		doc := parseDocument(t, w.Body)

		assert.Empty(t, cardSlugs(doc))
		assert.Equal(t, 1, doc.Find(".empty").Length())
		assert.Equal(t, "/auctions?page=2", doc.Find("a.prev").AttrOr("href", ""))
	})

	t.Run("filters survive page links", func(t *testing.T) {
		doc := parseDocument(t, get(t, handler, "/auctions?sort=newest&page=1").Body)

		assert.Equal(t, "/auctions?page=2&sort=newest", doc.Find("a.next").AttrOr("href", ""))
	})
}

func TestCatalogInvalidQuery(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	for _, query := range []string{
		"min_price=abc",
		"min_price=-5",
		"min_price=50&max_price=10",
		"sort=cheapest",
		"page=0",
		"time_left=tomorrow",
		"flag=in-stock",
	} {
		t.Run(query, func(t *testing.T) {
			w := get(t, handler, "/auctions?"+query)
			require.Equal(t, http.StatusBadRequest, w.Code)

			doc := parseDocument(t, w.Body)
			assert.Equal(t, 1, doc.Find(".error").Length())
			// the unfiltered first page is shown instead
			assert.Equal(t, expectedSlugs(t, listing.KindAuction, ""), cardSlugs(doc))
		})
	}
}

func TestCatalogFallbackBanner(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginFallback})

	w := get(t, handler, "/vehicles")
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseDocument(t, w.Body)
	assert.Contains(t, doc.Find(".banner").Text(), fallbackBanner.Message)
	assert.NotEmpty(t, cardSlugs(doc))
}

func TestCatalogWithoutBackendShowsNoBanner(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginFixtures})

	doc := parseDocument(t, get(t, handler, "/vehicles").Body)
	assert.Equal(t, 0, doc.Find(".banner").Length())
}

func TestDetailPage(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	w := get(t, handler, "/vehicles/1967-ford-mustang")
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseDocument(t, w.Body)
	assert.Equal(t, "1967 Ford Mustang Fastback", strings.TrimSpace(doc.Find("article.detail h1").Text()))
	assert.Equal(t, "/vehicles", doc.Find("a.back").AttrOr("href", ""))
	assert.Equal(t, 1, doc.Find(".badge").Length())

	facts := map[string]string{}
	doc.Find("dl.facts dt").Each(func(_ int, s *goquery.Selection) {
		facts[s.Text()] = s.Next().Text()
	})
	assert.Equal(t, "Ford", facts["Make"])
}

func TestDetailPageAuctionFacts(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	doc := parseDocument(t, get(t, handler, "/auctions/vintage-leica-m3").Body)

	facts := map[string]string{}
	doc.Find("dl.facts dt").Each(func(_ int, s *goquery.Selection) {
		facts[s.Text()] = s.Next().Text()
	})
	assert.Equal(t, "$1,250.00", strings.TrimSpace(doc.Find("article.detail .price").Text()))
	assert.Equal(t, "$1,500.00", facts["Reserve"])
	assert.Equal(t, "31", facts["Bids"])
	assert.Equal(t, "5h 0m left", facts["Time left"])
	assert.Equal(t, "Lens Lab", facts["Seller"])
}

func TestDetailPageNotFound(t *testing.T) {
	handler, _ := newTestRouter(t, testConfig(), fixtureSource{origin: datasource.OriginBackend})

	w := get(t, handler, "/vehicles/flying-car")
	require.Equal(t, http.StatusNotFound, w.Code)

	doc := parseDocument(t, w.Body)
	assert.Equal(t, "Listing not found", strings.TrimSpace(doc.Find(".not-found h1").Text()))
	assert.Contains(t, doc.Find(".not-found p").Text(), "flying-car")
	assert.Equal(t, "/vehicles", doc.Find("a.back").AttrOr("href", ""))
}

func TestDetailPageSourceError(t *testing.T) {
	source := fixtureSource{origin: datasource.OriginFixtures, err: errors.New("disk on fire")}
	handler, _ := newTestRouter(t, testConfig(), source)

	w := get(t, handler, "/shop/copper-kettle")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	doc := parseDocument(t, w.Body)
	assert.Equal(t, 1, doc.Find(".error").Length())
	assert.NotContains(t, doc.Find(".error").Text(), "disk on fire")
	assert.Equal(t, 0, doc.Find(".not-found").Length())
}
