package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/pkg/serper"
)

// SerperProvider adapts the Serper API to the Provider interface.
type SerperProvider struct {
	client serper.Client
}

// NewSerperProvider wraps a Serper client.
func NewSerperProvider(client serper.Client) *SerperProvider {
	return &SerperProvider{client: client}
}

// Search pages through Serper results. Serper has no exact-term filter, so
// the term is folded into the query text.
func (p *SerperProvider) Search(ctx context.Context, query, exactTerm string, startPage, endPage int) ([]Result, error) {
	q := query
	if exactTerm != "" {
		q = fmt.Sprintf("%s in %s", query, exactTerm)
	}

	var results []Result
	for page := startPage; page <= endPage; page++ {
		resp, err := p.client.Search(ctx, serper.SearchRequest{Query: q, Page: page})
		if err != nil {
			zap.L().Warn("search: serper page failed",
				zap.String("query", q),
				zap.Int("page", page),
				zap.Error(err),
			)
			continue
		}
		for _, r := range resp.Organic {
			results = append(results, Result{
				Title:   r.Title,
				Snippet: r.Snippet,
				URL:     r.Link,
			})
		}
	}
	return results, nil
}
