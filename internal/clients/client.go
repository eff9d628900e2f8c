// Package clients wraps the HTTP APIs of the remote Product, User and Order
// services in typed call methods. There is no retry and no circuit breaking:
// a 404 maps to a not-found error for the resource, anything else surfaces as
// a remote communication failure.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopkit/shop-services/internal/apperr"
)

// errStatusNotFound marks a downstream 404 so typed clients can translate it
// into a resource-specific not-found error.
var errStatusNotFound = errors.New("remote returned 404")

type Client struct {
	Name    string
	BaseURL *url.URL
	HTTP    *http.Client
}

func New(name, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid %s base url %q: %w", name, baseURL, err)
	}
	return &Client{
		Name:    name,
		BaseURL: u,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := c.BaseURL.ResolveReference(&url.URL{Path: path})

	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperr.Unexpectedf(err, "%s: encode request body", c.Name)
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return apperr.Unexpectedf(err, "%s: build request", c.Name)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return apperr.Remotef(err, "%s service unreachable", c.Name)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errStatusNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperr.Remotef(nil, "%s service returned status %d", c.Name, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Remotef(err, "%s service returned invalid response", c.Name)
	}
	return nil
}

// envelope is the {status, message, data} wrapper internal services use for
// their responses.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
