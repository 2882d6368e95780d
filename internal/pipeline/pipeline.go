// Package pipeline orchestrates two-stage company discovery: a broad
// search-and-extract pass, then a targeted per-company backfill for records
// found without an email.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/fetch"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/search"
	"github.com/sells-group/outreach-cli/internal/store"
)

const (
	// companiesPerPage is the assumed useful yield of one search results
	// page, used to size the primary search.
	companiesPerPage = 10

	// backfillURLCap bounds how many candidate URLs are probed per company
	// during backfill before giving up on it.
	backfillURLCap = 2
)

// Extractor is the LLM-backed extraction surface the pipeline drives.
type Extractor interface {
	Extract(ctx context.Context, content, industry, location string) []model.Company
	ExtractContact(ctx context.Context, content, companyName string) model.Contact
}

// Pipeline wires the search provider, page fetcher and extractor together.
// All collaborators are passed in by the caller; the pipeline owns no
// hidden clients.
type Pipeline struct {
	search    search.Provider
	fetcher   fetch.Fetcher
	extractor Extractor
}

// New creates a Pipeline.
func New(provider search.Provider, fetcher fetch.Fetcher, extractor Extractor) *Pipeline {
	return &Pipeline{
		search:    provider,
		fetcher:   fetcher,
		extractor: extractor,
	}
}

// RunResult reports a discovery run's outcome. Achieved may fall short of
// Requested when sources are exhausted; that is a smaller result, not an
// error.
type RunResult struct {
	OutputPath string
	Requested  int
	Achieved   int
}

// tally accumulates discovery state across both stages. A record counts
// toward the target only when it qualifies for persistence (name and email
// both present), so the counter can never outpace the written rows.
type tally struct {
	all       []model.Company
	withEmail int
}

// missingEmail returns pointers to every named record still lacking an
// email, in discovery order. Records that already hold an email never
// enter the set, so re-running backfill against them is a no-op by
// construction.
func (t *tally) missingEmail() []*model.Company {
	var missing []*model.Company
	for i := range t.all {
		if t.all[i].Name != "" && !t.all[i].HasEmail() {
			missing = append(missing, &t.all[i])
		}
	}
	return missing
}

// Run executes discovery until targetCount companies with emails are
// written or sources are exhausted. Rows are appended to out as soon as
// they qualify.
func (p *Pipeline) Run(ctx context.Context, industry, location string, targetCount int, out *store.ProspectWriter) (*RunResult, error) {
	if targetCount <= 0 {
		return nil, eris.Errorf("pipeline: target count must be positive, got %d", targetCount)
	}

	log := zap.L().With(
		zap.String("industry", industry),
		zap.String("location", location),
		zap.Int("target", targetCount),
	)
	log.Info("discovery started", zap.String("output", out.Path()))

	pages := targetCount / companiesPerPage
	if pages < 1 {
		pages = 1
	}

	query := fmt.Sprintf("best %s in %s", industry, location)
	results, err := p.search.Search(ctx, query, location, 1, pages)
	if err != nil {
		log.Warn("primary search failed", zap.Error(err))
	}

	acc := &tally{}
	if err := p.primaryPass(ctx, results, industry, location, targetCount, out, acc, log); err != nil {
		return nil, err
	}

	if remaining := targetCount - acc.withEmail; remaining > 0 {
		missing := acc.missingEmail()
		log.Info("backfill started",
			zap.Int("needed", remaining),
			zap.Int("candidates", len(missing)),
		)
		if err := p.backfill(ctx, missing, location, remaining, out, acc, log); err != nil {
			return nil, err
		}
	}

	log.Info("discovery complete",
		zap.Int("requested", targetCount),
		zap.Int("achieved", acc.withEmail),
		zap.String("output", out.Path()),
	)

	return &RunResult{
		OutputPath: out.Path(),
		Requested:  targetCount,
		Achieved:   acc.withEmail,
	}, nil
}

// primaryPass scrapes each search result in order, extracting companies and
// persisting qualifying records, until the target is met or results run
// out. Per-URL failures degrade to zero companies for that URL.
func (p *Pipeline) primaryPass(ctx context.Context, results []search.Result, industry, location string, targetCount int, out *store.ProspectWriter, acc *tally, log *zap.Logger) error {
	for i, result := range results {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		content, err := p.fetcher.Fetch(ctx, result.URL)
		if err != nil {
			log.Debug("fetch failed, skipping url",
				zap.String("url", result.URL),
				zap.Error(err),
			)
			content = ""
		}

		var extracted []model.Company
		if content != "" {
			extracted = p.extractor.Extract(ctx, content, industry, location)
		}

		var qualified []model.Company
		for _, c := range extracted {
			if c.Qualified() {
				qualified = append(qualified, c)
			}
		}
		if len(qualified) > 0 {
			if err := out.Append(qualified...); err != nil {
				return eris.Wrap(err, "pipeline: persist companies")
			}
		}

		acc.all = append(acc.all, extracted...)
		acc.withEmail += len(qualified)

		log.Info("stage 1 progress",
			zap.Int("url", i+1),
			zap.Int("urls_total", len(results)),
			zap.Int("with_email", acc.withEmail),
		)

		if acc.withEmail >= targetCount {
			log.Info("stage 1 stopped early, target reached",
				zap.Int("with_email", acc.withEmail),
			)
			return nil
		}
	}
	return nil
}

// backfill runs a targeted search per missing-email company, trying the
// search snippets first and then up to backfillURLCap of the result pages.
// Successful lookups are merged into the record and persisted.
func (p *Pipeline) backfill(ctx context.Context, missing []*model.Company, location string, remaining int, out *store.ProspectWriter, acc *tally, log *zap.Logger) error {
	for i, company := range missing {
		if remaining <= 0 {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Info("stage 2 progress",
			zap.Int("company", i+1),
			zap.Int("companies_total", len(missing)),
			zap.String("name", company.Name),
		)

		query := fmt.Sprintf("%s in %s email phone", company.Name, location)
		results, err := p.search.Search(ctx, query, "", 1, 1)
		if err != nil {
			log.Warn("backfill search failed",
				zap.String("name", company.Name),
				zap.Error(err),
			)
			continue
		}

		contact := p.contactFromSnippets(ctx, results, company.Name, log)
		if contact.Email == "" {
			contact = p.contactFromPages(ctx, results, company.Name, log)
		}
		if contact.Email == "" {
			continue
		}

		company.Email = contact.Email
		if company.Phone == "" && contact.Phone != "" {
			company.Phone = contact.Phone
		}

		if err := out.Append(*company); err != nil {
			return eris.Wrap(err, "pipeline: persist backfilled company")
		}
		acc.withEmail++
		remaining--
	}
	return nil
}

// contactFromSnippets runs contact extraction over the serialized search
// results, without fetching anything.
func (p *Pipeline) contactFromSnippets(ctx context.Context, results []search.Result, companyName string, log *zap.Logger) model.Contact {
	if len(results) == 0 {
		return model.Contact{}
	}

	serialized, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Warn("serialize search results", zap.Error(err))
		return model.Contact{}
	}

	return p.extractor.ExtractContact(ctx, string(serialized), companyName)
}

// contactFromPages probes candidate result URLs in order, stopping at the
// first extracted email or after backfillURLCap attempts.
func (p *Pipeline) contactFromPages(ctx context.Context, results []search.Result, companyName string, log *zap.Logger) model.Contact {
	if len(results) > backfillURLCap {
		results = results[:backfillURLCap]
	}

	for _, result := range results {
		content, err := p.fetcher.Fetch(ctx, result.URL)
		if err != nil {
			log.Debug("backfill fetch failed",
				zap.String("url", result.URL),
				zap.Error(err),
			)
			continue
		}

		contact := p.extractor.ExtractContact(ctx, content, companyName)
		if contact.Email != "" {
			return contact
		}
	}
	return model.Contact{}
}
