package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GustavoCaso/storefront/internal/listing"
)

// ErrNotFound is returned for a slug that exists nowhere.
var ErrNotFound = errors.New("listing not found")

// errBackendNotFound marks a 404 from the backend. The fallback still checks
// the fixtures before reporting ErrNotFound.
var errBackendNotFound = errors.New("backend has no such listing")

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client reads listings from the REST backend.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{client: client}
}

// List fetches GET /{collection}.
func (c *Client) List(ctx context.Context, kind listing.Kind) ([]listing.Record, error) {
	data, err := c.get(c.client.R().SetContext(ctx), "/"+kind.Collection())
	if err != nil {
		return nil, err
	}

	return listing.DecodeList(kind, data)
}

// Get fetches GET /{collection}/{slug}.
func (c *Client) Get(ctx context.Context, kind listing.Kind, slug string) (listing.Record, error) {
	req := c.client.R().
		SetContext(ctx).
		SetPathParam("slug", slug)

	data, err := c.get(req, "/"+kind.Collection()+"/{slug}")
	if err != nil {
		return listing.Record{}, err
	}

	return listing.DecodeOne(kind, data)
}

func (c *Client) get(req *resty.Request, path string) (json.RawMessage, error) {
	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", path, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, errBackendNotFound
	}

	if resp.IsError() {
		return nil, fmt.Errorf("request %s failed: status %d", path, resp.StatusCode())
	}

	var env envelope
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("invalid response from %s: %w", path, err)
	}

	if !env.Success {
		return nil, fmt.Errorf("backend reported failure for %s: %s", path, env.Error)
	}

	return env.Data, nil
}
