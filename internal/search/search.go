// Package search abstracts paged web search across interchangeable backends.
package search

import (
	"context"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Provider returns ranked results for a query across an inclusive page
// range. The exact term narrows results to an exact-match phrase; backends
// decide how to apply it. A failing page is logged and skipped rather than
// failing the whole range, so a Provider error means no page could even be
// requested.
type Provider interface {
	Search(ctx context.Context, query, exactTerm string, startPage, endPage int) ([]Result, error)
}
