// Package openlibrary resolves book metadata, author names and cover images
// from the Open Library catalog, caching responses in memory for the
// lifetime of the process.
package openlibrary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://openlibrary.org"
	defaultCoversURL = "https://covers.openlibrary.org"
)

// Client performs GET requests against Open Library. Every call is exactly
// one network round trip; caching is layered on top by Service.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	coversURL  string
	limiter    *rate.Limiter
}

func NewClient(userAgent string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: userAgent,
		baseURL:   defaultBaseURL,
		coversURL: defaultCoversURL,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// SetBaseURLs overrides the API and covers hosts. Tests point these at
// httptest servers.
func (c *Client) SetBaseURLs(base, covers string) {
	if base != "" {
		c.baseURL = base
	}
	if covers != "" {
		c.coversURL = covers
	}
}

// getJSON fetches url and decodes the body into target. A non-2xx response
// is a *StatusError, a body that is not valid JSON a *DecodeError. No
// retries: failed fetches are the caller's to repeat.
func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}
