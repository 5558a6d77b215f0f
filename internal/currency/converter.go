package currency

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/storefront/internal/logger"
)

// Converter resolves amounts in another currency. It never fails: whatever goes
// wrong, the caller gets the unconverted amount back.
type Converter struct {
	service Service
	logger  *logger.Logger
}

func NewConverter(service Service, logger *logger.Logger) *Converter {
	return &Converter{
		service: service,
		logger:  logger,
	}
}

func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to || c.service == nil {
		return amount
	}

	resp, err := c.service.Convert(ctx, amount, from, to)
	if err != nil {
		c.logger.Warn("Currency conversion failed, showing source amount", "from", from, "to", to, "error", err)
		return amount
	}

	if resp == nil || !resp.Success {
		reason := ""
		if resp != nil {
			reason = resp.Error
		}
		c.logger.Warn("Currency conversion unsuccessful, showing source amount", "from", from, "to", to, "reason", reason)
		return amount
	}

	if resp.Data == nil || !resp.Data.ConvertedAmount.Valid || resp.Data.ConvertedAmount.Decimal.IsNegative() {
		c.logger.Warn("Currency conversion returned malformed data, showing source amount", "from", from, "to", to)
		return amount
	}

	return resp.Data.ConvertedAmount.Decimal
}
