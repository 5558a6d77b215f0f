package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	decimalValue  = 100
	thousandValue = 1000
)

// FormatMoney renders an amount with two decimal places, grouping the whole
// part in thousands.
func FormatMoney(amount decimal.Decimal, thousand, decimalSeparator string) string {
	var result string
	var isNegative bool

	cents := amount.Round(2).Shift(2).IntPart()
	if cents < 0 {
		cents *= -1
		isNegative = true
	}

	result = fmt.Sprintf("%s%02d", decimalSeparator, cents%decimalValue)
	value := cents / decimalValue

	for value >= thousandValue {
		result = fmt.Sprintf("%s%03d%s", thousand, value%thousandValue, result)
		value /= thousandValue
	}

	if isNegative {
		return fmt.Sprintf("-%d%s", value, result)
	}

	return fmt.Sprintf("%d%s", value, result)
}
