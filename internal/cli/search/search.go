package search

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"text/template"
	"time"

	"github.com/GustavoCaso/storefront/internal/catalog"
	"github.com/GustavoCaso/storefront/internal/cli"
	"github.com/GustavoCaso/storefront/internal/config"
	"github.com/GustavoCaso/storefront/internal/currency"
	"github.com/GustavoCaso/storefront/internal/datasource"
	"github.com/GustavoCaso/storefront/internal/listing"
	"github.com/GustavoCaso/storefront/internal/logger"
	"github.com/GustavoCaso/storefront/internal/util"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

// source is the part of the data source the search needs.
type source interface {
	Listings(ctx context.Context, kind listing.Kind) datasource.Collection
}

type row struct {
	Slug     string
	Name     string
	Price    string
	Seller   string
	TimeLeft string
	Featured bool
}

type report struct {
	Title      string
	Origin     datasource.Origin
	Sort       string
	Rows       []row
	TotalCount int
	Page       int
	TotalPages int
}

type searchCommand struct {
}

func NewCommand() cli.Command {
	return searchCommand{}
}

func (c searchCommand) Description() string {
	return "Search a listing collection from the terminal"
}

type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

var (
	kind        string
	keyword     string
	sortKey     string
	page        int
	minPrice    string
	maxPrice    string
	displayCode string
	categories  multiFlag
	flags       multiFlag
	timeLeft    string
)

func (c searchCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&kind, "kind", string(listing.KindAuction), "collection to search: auction, product, vehicle or property")
	fs.StringVar(&keyword, "k", "", "keyword to match against name, seller and category")
	fs.StringVar(&sortKey, "sort", "", "sort order, defaults to the collection default")
	fs.IntVar(&page, "page", 1, "page to show")
	fs.StringVar(&minPrice, "min", "", "minimum price")
	fs.StringVar(&maxPrice, "max", "", "maximum price")
	fs.StringVar(&displayCode, "currency", "", "display currency, defaults to the configured one")
	fs.StringVar(&timeLeft, "time-left", "", "auction time left bucket")
	fs.Var(&categories, "category", "category to include, repeatable")
	fs.Var(&flags, "flag", "featured, in-stock or top-rated, repeatable")
}

func (c searchCommand) Run(conf *config.Config, logger *logger.Logger) error {
	k, err := listing.ParseKind(kind)
	if err != nil {
		return err
	}

	ctx := context.Background()

	store, err := cli.OpenStorage(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	converter, err := cli.NewConverter(conf, logger)
	if err != nil {
		return err
	}

	display := currency.NewContext(displayCode, conf.Currency.Default)
	ctx = currency.WithContext(ctx, display)

	return search(ctx, os.Stdout, cli.NewSource(conf, store, logger), converter, k, queryParams(), time.Now())
}

// queryParams encodes the flags the same way the list pages encode their
// query string.
func queryParams() url.Values {
	params := url.Values{}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}

	set("q", keyword)
	set("sort", sortKey)
	set("min_price", minPrice)
	set("max_price", maxPrice)
	set("time_left", timeLeft)
	if page > 1 {
		params.Set("page", fmt.Sprint(page))
	}
	params["category"] = categories
	params["flag"] = flags

	return params
}

func search(ctx context.Context, out io.Writer, src source, converter *currency.Converter, k listing.Kind, params url.Values, now time.Time) error {
	d := catalog.DescriptorFor(k)

	state, err := catalog.ParseState(d, params)
	if err != nil {
		return err
	}

	collection := src.Listings(ctx, k)
	result := catalog.Query(collection.Records, state.Filters, state.Sort, state.Pagination(), now)

	display := currency.FromContext(ctx)
	displays := make([]*currency.Display, len(result.Page))
	for i, r := range result.Page {
		displays[i] = currency.NewDisplay(converter)
		displays[i].Update(ctx, r.Price, r.Currency, display.Code())
	}
	prices := currency.ResolveAll(ctx, displays)

	rows := make([]row, len(result.Page))
	for i, r := range result.Page {
		rows[i] = row{
			Slug:     r.Slug,
			Name:     r.Name,
			Price:    display.FormatPrice(prices[i], ""),
			Seller:   r.Seller,
			Featured: r.IsFeatured,
		}
		if remaining, ok := r.Remaining(now); ok {
			rows[i].TimeLeft = timeLeftLabel(remaining)
		}
	}

	err = renderTemplate(out, "results.tmpl", report{
		Title:      d.Title,
		Origin:     collection.Origin,
		Sort:       state.Sort.Label(),
		Rows:       rows,
		TotalCount: result.TotalCount,
		Page:       result.CurrentPage,
		TotalPages: result.TotalPages,
	})
	if err != nil {
		return fmt.Errorf("unable to render results: %w", err)
	}

	return nil
}

func timeLeftLabel(remaining time.Duration) string {
	if remaining <= 0 {
		return "ended"
	}
	return remaining.Truncate(time.Minute).String()
}

var templateFuncs = template.FuncMap{
	"colorOutput": util.ColorOutput,
}

func renderTemplate(out io.Writer, templateName string, value any) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}

	t, err := template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl))
	if err != nil {
		return err
	}

	return t.Execute(out, value)
}
