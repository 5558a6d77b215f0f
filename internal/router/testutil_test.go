package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/currency"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/fixtures"
	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/testutil"
)

// fixtureSource serves the bundled fixtures as they are, with a fixed origin.
type fixtureSource struct {
	origin datasource.Origin
	err    error
}

func (s fixtureSource) Listings(_ context.Context, kind listing.Kind) datasource.Collection {
	records, err := fixtures.Load(kind, fixtures.Epoch)
	if err != nil {
		return datasource.Collection{Records: []listing.Record{}, Origin: s.origin}
	}
	return datasource.Collection{Records: records, Origin: s.origin}
}

func (s fixtureSource) Listing(_ context.Context, kind listing.Kind, slug string) (listing.Record, datasource.Origin, error) {
	if s.err != nil {
		return listing.Record{}, s.origin, s.err
	}

	records, err := fixtures.Load(kind, fixtures.Epoch)
	if err != nil {
		return listing.Record{}, s.origin, err
	}
	for _, r := range records {
		if r.Slug == slug {
			return r, s.origin, nil
		}
	}
	return listing.Record{}, s.origin, datasource.ErrNotFound
}

// rateService multiplies amounts by a fixed rate per target currency. Targets
// without a rate fail.
type rateService struct {
	rates map[string]decimal.Decimal
}

func (s rateService) Convert(_ context.Context, amount decimal.Decimal, _, to string) (*currency.ConvertResponse, error) {
	rate, ok := s.rates[to]
	if !ok {
		return &currency.ConvertResponse{Success: false, Error: "unsupported currency"}, nil
	}
	return &currency.ConvertResponse{
		Success: true,
		Data:    &currency.ConvertData{ConvertedAmount: decimal.NewNullDecimal(amount.Mul(rate))},
	}, nil
}

var testRates = rateService{rates: map[string]decimal.Decimal{
	"EUR": decimal.NewFromInt(2),
	"GBP": decimal.RequireFromString("0.5"),
}}

func testConfig() *config.Config {
	return &config.Config{
		Currency: config.CurrencyConfig{Default: "USD"},
	}
}

// newTestRouter builds the full handler over source, frozen at the fixture epoch.
func newTestRouter(t *testing.T, conf *config.Config, source Source) (http.Handler, *router) {
	t.Helper()

	logger := testutil.TestLogger(t)
	handler, r := New(conf, source, currency.NewConverter(testRates, logger), logger)
	r.now = func() time.Time { return fixtures.Epoch }

	return handler, r
}

func get(t *testing.T, handler http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func parseDocument(t *testing.T, body io.Reader) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(body)
	require.NoError(t, err)
	return doc
}

func cardSlugs(doc *goquery.Document) []string {
	slugs := []string{}
	doc.Find("article.card").Each(func(_ int, s *goquery.Selection) {
		slugs = append(slugs, s.AttrOr("data-slug", ""))
	})
	return slugs
}
