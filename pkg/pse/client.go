// Package pse provides a client for the Google Programmable Search Engine API.
package pse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Client performs Programmable Search Engine queries.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// SearchRequest describes one query page. Start is the 1-based index of the
// first result to return; each page holds ten results.
type SearchRequest struct {
	Query      string
	ExactTerms string
	Start      int
}

// SearchResponse is the parsed API response.
type SearchResponse struct {
	Items []Item    `json:"items"`
	Error *APIError `json:"error"`
}

// Item is a single search result.
type Item struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// APIError is Google's in-band error payload.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey   string
	engineID string
	baseURL  string
	http     *http.Client
}

// NewClient creates a Programmable Search Engine client. The engine ID is
// the "cx" search context identifier.
func NewClient(apiKey, engineID string, opts ...Option) Client {
	c := &httpClient{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	if req.ExactTerms != "" {
		q.Set("exactTerms", req.ExactTerms)
	}
	if req.Start > 0 {
		q.Set("start", strconv.Itoa(req.Start))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "pse: create request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "pse: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "pse: read response")
	}

	// Google reports failures through a JSON error payload; decode it even
	// for non-200 statuses so callers see the message.
	var result SearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("pse: unexpected status %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, eris.Wrap(err, "pse: unmarshal response")
	}

	if result.Error != nil {
		return nil, eris.Errorf("pse: api error %d: %s", result.Error.Code, result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("pse: unexpected status %d", resp.StatusCode)
	}

	return &result, nil
}
