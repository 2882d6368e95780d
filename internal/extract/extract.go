// Package extract turns unstructured page text into company records via
// LLM calls.
package extract

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/llm"
)

// Extractor runs structured extraction prompts against a chat model. Both
// extraction flavors share one client; provider selection happens once, in
// the factory that built it.
type Extractor struct {
	llm llm.Client
}

// New creates an Extractor backed by the given model client.
func New(client llm.Client) *Extractor {
	return &Extractor{llm: client}
}

// Extract pulls every on-criteria company out of page content. Transport
// and parse failures degrade to zero records; they are logged and never
// propagate.
func (e *Extractor) Extract(ctx context.Context, content, industry, location string) []model.Company {
	raw, err := e.llm.Complete(ctx, systemPrompt, companyPrompt(content, industry, location))
	if err != nil {
		zap.L().Warn("extract: company completion failed", zap.Error(err))
		return nil
	}

	block, ok := jsonBlock(raw, '[', ']')
	if !ok {
		zap.L().Warn("extract: no JSON array in response", zap.String("response", truncate(raw, 200)))
		return nil
	}

	var companies []model.Company
	if err := json.Unmarshal([]byte(block), &companies); err != nil {
		zap.L().Warn("extract: parse companies", zap.Error(err))
		return nil
	}

	// Absent fields already default to "" through the struct zero value;
	// the scrub below enforces the no-partial-contact invariant even when
	// the model ignores its instructions.
	for i := range companies {
		companies[i].Email = scrubContact(companies[i].Email)
		companies[i].Phone = scrubContact(companies[i].Phone)
	}

	return companies
}

// ExtractContact pulls a single company's best-effort contact pair out of
// free-text content (search snippets or a scraped page). Failures degrade
// to an empty Contact.
func (e *Extractor) ExtractContact(ctx context.Context, content, companyName string) model.Contact {
	raw, err := e.llm.Complete(ctx, systemPrompt, contactPrompt(content, companyName))
	if err != nil {
		zap.L().Warn("extract: contact completion failed",
			zap.String("company", companyName),
			zap.Error(err),
		)
		return model.Contact{}
	}

	block, ok := jsonBlock(raw, '{', '}')
	if !ok {
		zap.L().Warn("extract: no JSON object in contact response",
			zap.String("company", companyName),
			zap.String("response", truncate(raw, 200)),
		)
		return model.Contact{}
	}

	var contact model.Contact
	if err := json.Unmarshal([]byte(block), &contact); err != nil {
		zap.L().Warn("extract: parse contact",
			zap.String("company", companyName),
			zap.Error(err),
		)
		return model.Contact{}
	}

	contact.Email = scrubContact(contact.Email)
	contact.Phone = scrubContact(contact.Phone)
	return contact
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
