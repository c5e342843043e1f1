// Package apiclient calls the catalog REST API on behalf of the web front end.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"job-catalog/internal/resource"
	"job-catalog/internal/shared/metrics"
)

// Client issues single-attempt requests against BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New constructs a Client. A zero timeout leaves requests unbounded.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// CollectionURL is the list/create URL of an endpoint.
func (c *Client) CollectionURL(endpoint string) string {
	return c.BaseURL + endpoint + "/"
}

// ItemURL is the URL of a single record.
func (c *Client) ItemURL(endpoint, id string) string {
	return c.BaseURL + endpoint + "/" + url.PathEscape(id)
}

// SearchURL appends the encoded filters to the search URL. With no filters
// the URL carries no query string.
func (c *Client) SearchURL(endpoint string, q url.Values) string {
	u := c.BaseURL + endpoint + "/search/"
	if len(q) == 0 {
		return u
	}
	return u + "?" + q.Encode()
}

// List fetches the full collection.
func (c *Client) List(ctx context.Context, endpoint string) ([]resource.Record, error) {
	return c.fetchList(ctx, c.CollectionURL(endpoint))
}

// Search fetches the filtered collection.
func (c *Client) Search(ctx context.Context, endpoint string, q url.Values) ([]resource.Record, error) {
	return c.fetchList(ctx, c.SearchURL(endpoint, q))
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, endpoint, id string) (resource.Record, error) {
	var rec resource.Record
	err := c.do(ctx, http.MethodGet, c.ItemURL(endpoint, id), nil, func(body io.Reader) error {
		var err error
		rec, err = resource.DecodeRecord(body)
		return err
	})
	return rec, err
}

// Create posts payload to the collection URL.
func (c *Client) Create(ctx context.Context, endpoint string, payload map[string]any) error {
	return c.do(ctx, http.MethodPost, c.CollectionURL(endpoint), payload, nil)
}

// Update puts payload to the record URL.
func (c *Client) Update(ctx context.Context, endpoint, id string, payload map[string]any) error {
	return c.do(ctx, http.MethodPut, c.ItemURL(endpoint, id), payload, nil)
}

// Delete removes one record.
func (c *Client) Delete(ctx context.Context, endpoint, id string) error {
	return c.do(ctx, http.MethodDelete, c.ItemURL(endpoint, id), nil, nil)
}

func (c *Client) fetchList(ctx context.Context, target string) ([]resource.Record, error) {
	var out []resource.Record
	err := c.do(ctx, http.MethodGet, target, nil, func(body io.Reader) error {
		var err error
		out, err = resource.DecodeRecords(body)
		return err
	})
	return out, err
}

// do performs one request. decode is called with the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, target string, payload any, decode func(io.Reader) error) (err error) {
	metrics.IncAPIRequest()
	start := time.Now()
	defer func() {
		metrics.ObserveAPIDuration(time.Since(start))
		if err != nil {
			metrics.IncAPIFailure()
		}
	}()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, target, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, resp.Body)
	}
	if decode == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := decode(resp.Body); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, target, err)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}
