package router

import (
	"context"
	"fmt"
	"time"

	"github.com/GustavoCaso/storefront/internal/catalog"
	"github.com/GustavoCaso/storefront/internal/currency"
	"github.com/GustavoCaso/storefront/internal/listing"
)

// card is a listing ready to render, prices already in the display currency.
type card struct {
	Record    listing.Record
	URL       string
	Price     string
	Secondary string
	// SecondaryLabel names the secondary price, e.g. "Reserve".
	SecondaryLabel string
	TimeLeft       string
	Ended          bool
	Rating         string
}

// cards converts every price on the page concurrently and waits for all of
// them. A price whose conversion fails shows its source amount.
func (router *router) cards(ctx context.Context, records []listing.Record) []card {
	display := currency.FromContext(ctx)
	now := router.now()

	prices := make([]*currency.Display, len(records))
	secondary := make([]*currency.Display, len(records))
	for i, r := range records {
		prices[i] = currency.NewDisplay(router.converter)
		prices[i].Update(ctx, r.Price, r.Currency, display.Code())

		if r.SecondaryPrice != nil {
			secondary[i] = currency.NewDisplay(router.converter)
			secondary[i].Update(ctx, *r.SecondaryPrice, r.Currency, display.Code())
		}
	}

	converted := currency.ResolveAll(ctx, prices)

	cards := make([]card, len(records))
	for i, r := range records {
		c := card{
			Record: r,
			URL:    catalog.DescriptorFor(r.Kind).Path + "/" + r.Slug,
			Price:  display.FormatPrice(converted[i], ""),
		}

		if secondary[i] != nil {
			c.Secondary = display.FormatPrice(secondary[i].Wait(ctx), "")
			c.SecondaryLabel = secondaryLabel(r.Kind)
		}

		if remaining, ok := r.Remaining(now); ok {
			c.TimeLeft = formatRemaining(remaining)
			c.Ended = remaining <= 0
		}

		if r.Rating != nil {
			c.Rating = fmt.Sprintf("%.1f", *r.Rating)
		}

		cards[i] = c
	}

	return cards
}

func secondaryLabel(kind listing.Kind) string {
	if kind == listing.KindAuction {
		return "Reserve"
	}
	return "Was"
}

func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "Ended"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh left", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm left", hours, minutes)
	default:
		return fmt.Sprintf("%dm left", max(minutes, 1))
	}
}
