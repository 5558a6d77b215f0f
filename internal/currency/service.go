package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// ConvertData is the payload of a successful conversion.
type ConvertData struct {
	ConvertedAmount decimal.NullDecimal `json:"convertedAmount"`
}

// ConvertResponse is the envelope returned by the conversion service.
type ConvertResponse struct {
	Success bool         `json:"success"`
	Data    *ConvertData `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Service converts an amount between two currency codes.
type Service interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*ConvertResponse, error)
}

type convertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

const convertPath = "/currency/convert"

// HTTPService calls the backend conversion endpoint. It never retries.
type HTTPService struct {
	client *resty.Client
}

func NewHTTPService(baseURL string, timeout time.Duration) *HTTPService {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPService{client: client}
}

func (s *HTTPService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*ConvertResponse, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(convertRequest{Amount: amount, From: from, To: to}).
		Post(convertPath)
	if err != nil {
		return nil, fmt.Errorf("currency conversion request failed: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("currency conversion failed: status %d", resp.StatusCode())
	}

	var envelope ConvertResponse
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("invalid currency conversion response: %w", err)
	}

	return &envelope, nil
}
