package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/pkg/pse"
)

// resultsPerPage is Google's fixed page size for the Custom Search API.
const resultsPerPage = 10

// PSEProvider adapts the Google Programmable Search Engine to the Provider
// interface.
type PSEProvider struct {
	client pse.Client
}

// NewPSEProvider wraps a PSE client.
func NewPSEProvider(client pse.Client) *PSEProvider {
	return &PSEProvider{client: client}
}

// Search pages through PSE results. PSE supports a native exact-terms
// filter, passed through as-is.
func (p *PSEProvider) Search(ctx context.Context, query, exactTerm string, startPage, endPage int) ([]Result, error) {
	var results []Result
	for page := startPage; page <= endPage; page++ {
		start := 1 + (page-1)*resultsPerPage
		resp, err := p.client.Search(ctx, pse.SearchRequest{
			Query:      query,
			ExactTerms: exactTerm,
			Start:      start,
		})
		if err != nil {
			zap.L().Warn("search: pse page failed",
				zap.String("query", query),
				zap.Int("page", page),
				zap.Error(err),
			)
			continue
		}
		for _, item := range resp.Items {
			results = append(results, Result{
				Title:   item.Title,
				Snippet: item.Snippet,
				URL:     item.Link,
			})
		}
	}
	return results, nil
}
