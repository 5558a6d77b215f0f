package search

import (
	"bytes"
	"context"
	"flag"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GustavoCaso/storefront/internal/currency"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/fixtures"
	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/testutil"
)

type fixtureSource struct {
	origin datasource.Origin
}

func (s fixtureSource) Listings(_ context.Context, kind listing.Kind) datasource.Collection {
	records, _ := fixtures.Load(kind, fixtures.Epoch)
	return datasource.Collection{Records: records, Origin: s.origin}
}

type doubler struct{}

func (doubler) Convert(_ context.Context, amount decimal.Decimal, _, _ string) (*currency.ConvertResponse, error) {
	return &currency.ConvertResponse{
		Success: true,
		Data:    &currency.ConvertData{ConvertedAmount: decimal.NewNullDecimal(amount.Mul(decimal.NewFromInt(2)))},
	}, nil
}

func runSearch(t *testing.T, kind listing.Kind, params url.Values, display string, origin datasource.Origin) (string, error) {
	t.Helper()
	color.NoColor = true

	logger := testutil.TestLogger(t)
	ctx := currency.WithContext(t.Context(), currency.NewContext(display, "USD"))

	var out bytes.Buffer
	err := search(ctx, &out, fixtureSource{origin: origin}, currency.NewConverter(doubler{}, logger), kind, params, fixtures.Epoch)
	return out.String(), err
}

func TestSetFlags(t *testing.T) {
	cmd := NewCommand()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)

	for name, def := range map[string]string{
		"kind":      "auction",
		"k":         "",
		"sort":      "",
		"page":      "1",
		"min":       "",
		"max":       "",
		"currency":  "",
		"time-left": "",
		"category":  "",
		"flag":      "",
	} {
		f := fs.Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}
}

func TestQueryParams(t *testing.T) {
	cmd := NewCommand()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)

	err := fs.Parse([]string{"-k", "ford", "-sort", "price-low", "-page", "2", "-min", "1000", "-flag", "featured", "-category", "Coupe", "-category", "SUV"})
	require.NoError(t, err)
	t.Cleanup(func() {
		keyword, sortKey, minPrice = "", "", ""
		page = 1
		categories, flags = nil, nil
	})

	params := queryParams()
	assert.Equal(t, "ford", params.Get("q"))
	assert.Equal(t, "price-low", params.Get("sort"))
	assert.Equal(t, "2", params.Get("page"))
	assert.Equal(t, "1000", params.Get("min_price"))
	assert.Empty(t, params.Get("max_price"))
	assert.Equal(t, []string{"featured"}, params["flag"])
	assert.Equal(t, []string{"Coupe", "SUV"}, params["category"])
}

func TestSearch(t *testing.T) {
	output, err := runSearch(t, listing.KindVehicle, url.Values{"q": {"mustang"}}, "USD", datasource.OriginBackend)
	require.NoError(t, err)

	assert.Contains(t, output, "Vehicles sorted by Newest")
	assert.Contains(t, output, "$89,000.00  1967 Ford Mustang Fastback Ford")
	assert.Contains(t, output, "1967-ford-mustang")
	assert.Contains(t, output, "1 results, page 1 of 1")
	assert.NotContains(t, output, "backend unavailable")
}

func TestSearchConvertsPrices(t *testing.T) {
	output, err := runSearch(t, listing.KindVehicle, url.Values{"q": {"mustang"}}, "EUR", datasource.OriginBackend)
	require.NoError(t, err)

	assert.Contains(t, output, "178.000,00 €")
}

func TestSearchMarksFeaturedAndTimeLeft(t *testing.T) {
	output, err := runSearch(t, listing.KindAuction, url.Values{"q": {"leica"}}, "USD", datasource.OriginBackend)
	require.NoError(t, err)

	line := ""
	for _, l := range strings.Split(output, "\n") {
		if strings.Contains(l, "vintage-leica-m3") {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.True(t, strings.HasPrefix(line, "*"))
	assert.Contains(t, line, "$1,250.00")
	assert.Contains(t, line, "5h0m0s")
}

func TestSearchNoResults(t *testing.T) {
	output, err := runSearch(t, listing.KindProperty, url.Values{"q": {"spaceship"}}, "USD", datasource.OriginFallback)
	require.NoError(t, err)

	assert.Contains(t, output, "No listings match")
	assert.Contains(t, output, "backend unavailable")
	assert.Contains(t, output, "0 results, page 1 of 1")
}

func TestSearchInvalidQuery(t *testing.T) {
	_, err := runSearch(t, listing.KindProduct, url.Values{"sort": {"most-bids"}}, "USD", datasource.OriginBackend)
	assert.ErrorContains(t, err, "invalid sort")
}

func TestTimeLeftLabel(t *testing.T) {
	assert.Equal(t, "ended", timeLeftLabel(0))
	assert.Equal(t, "ended", timeLeftLabel(-5*time.Second))
	assert.Equal(t, "26h30m0s", timeLeftLabel(26*time.Hour+30*time.Minute+15*time.Second))
}
