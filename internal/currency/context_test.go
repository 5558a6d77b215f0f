package currency

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	assert.Equal(t, "EUR", NewContext("eur", "USD").Code())
	assert.Equal(t, "GBP", NewContext("XYZ", "gbp").Code())
	assert.Equal(t, "USD", NewContext("", "").Code())
	assert.Equal(t, "USD", Context{}.Code())
}

func TestFormatPrice(t *testing.T) {
	c := NewContext("USD", "USD")

	tests := []struct {
		name     string
		amount   string
		code     string
		expected string
	}{
		{name: "selected currency", amount: "1234.5", code: "", expected: "$1,234.50"},
		{name: "euro", amount: "1234.5", code: "EUR", expected: "1.234,50 €"},
		{name: "pound", amount: "0.99", code: "gbp", expected: "£0.99"},
		{name: "swiss franc", amount: "12500", code: "CHF", expected: "CHF 12'500.00"},
		{name: "negative", amount: "-3", code: "CAD", expected: "-CA$3.00"},
		{name: "unknown code", amount: "10", code: "xyz", expected: "10.00 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.FormatPrice(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithContext(context.Background(), NewContext("AUD", "USD"))

	assert.Equal(t, "AUD", FromContext(ctx).Code())
	assert.Equal(t, "USD", FromContext(context.Background()).Code())
}
