package currency

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/storefront/internal/util"
)

// Info describes how a currency is written.
type Info struct {
	Code     string
	Name     string
	Symbol   string
	Thousand string
	Decimal  string
	// SymbolAfter places the symbol after the amount.
	SymbolAfter bool
}

// Supported lists the currencies a shopper can pick, in menu order.
var Supported = []Info{
	{Code: "USD", Name: "US Dollar", Symbol: "$", Thousand: ",", Decimal: "."},
	{Code: "EUR", Name: "Euro", Symbol: "€", Thousand: ".", Decimal: ",", SymbolAfter: true},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Thousand: ",", Decimal: "."},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "CA$", Thousand: ",", Decimal: "."},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Thousand: ",", Decimal: "."},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF ", Thousand: "'", Decimal: "."},
}

// Lookup returns the formatting rules for code.
func Lookup(code string) (Info, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, info := range Supported {
		if info.Code == code {
			return info, true
		}
	}
	return Info{}, false
}

// Context is the display currency selected by the shopper.
type Context struct {
	code string
}

// NewContext selects code when it is supported and fallback otherwise.
func NewContext(code, fallback string) Context {
	if info, ok := Lookup(code); ok {
		return Context{code: info.Code}
	}
	if info, ok := Lookup(fallback); ok {
		return Context{code: info.Code}
	}
	return Context{code: Supported[0].Code}
}

func (c Context) Code() string {
	if c.code == "" {
		return Supported[0].Code
	}
	return c.code
}

// FormatPrice renders amount in code, or in the selected currency when code is
// empty. Unknown codes are written as "1,234.00 XYZ".
func (c Context) FormatPrice(amount decimal.Decimal, code string) string {
	if strings.TrimSpace(code) == "" {
		code = c.Code()
	}

	info, ok := Lookup(code)
	if !ok {
		return util.FormatMoney(amount, ",", ".") + " " + strings.ToUpper(strings.TrimSpace(code))
	}

	formatted := util.FormatMoney(amount.Abs(), info.Thousand, info.Decimal)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	if info.SymbolAfter {
		return sign + formatted + " " + info.Symbol
	}
	return sign + info.Symbol + formatted
}

type contextKey struct{}

// WithContext stores the display currency in ctx.
func WithContext(ctx context.Context, c Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the display currency stored in ctx, or the first
// supported currency.
func FromContext(ctx context.Context) Context {
	if c, ok := ctx.Value(contextKey{}).(Context); ok {
		return c
	}
	return Context{}
}
