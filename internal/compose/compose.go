// Package compose drafts personalized outreach emails for discovered
// companies.
package compose

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/store"
	"github.com/sells-group/outreach-cli/pkg/llm"
)

// Sender describes the outreach sender's profile, included verbatim in
// every prompt.
type Sender struct {
	Name         string
	Description  string
	Instructions string
}

// Composer drafts one email per company via the configured model.
type Composer struct {
	llm llm.Client
}

// New creates a Composer.
func New(client llm.Client) *Composer {
	return &Composer{llm: client}
}

// Compose drafts an email for one company. Model output is parsed through
// an ordered fallback chain, so a usable subject and body always come
// back; only the model call itself can fail.
func (c *Composer) Compose(ctx context.Context, company model.Company, sender Sender) (model.Draft, error) {
	prompt := composePrompt(company.Name, company.Services, sender)

	raw, err := c.llm.Complete(ctx, composeSystemPrompt, prompt)
	if err != nil {
		return model.Draft{}, eris.Wrapf(err, "compose: draft email for %s", company.Name)
	}

	content := parseDraft(raw)
	return model.Draft{
		Company: company.Name,
		Email:   company.Email,
		Subject: stripDelimiter(content.Subject),
		Body:    stripDelimiter(content.Body),
	}, nil
}

// ComposeAll reads discovered companies from inputPath, drafts an email
// for every row that has an email address, and appends each draft to out
// as soon as it is ready. Per-company failures are logged and skipped.
func (c *Composer) ComposeAll(ctx context.Context, inputPath string, sender Sender, out *store.DraftWriter) (int, error) {
	companies, err := store.ReadProspects(inputPath)
	if err != nil {
		return 0, eris.Wrap(err, "compose: read company data")
	}

	composed := 0
	for _, company := range companies {
		if ctx.Err() != nil {
			return composed, ctx.Err()
		}
		if !company.HasEmail() {
			continue
		}

		draft, err := c.Compose(ctx, company, sender)
		if err != nil {
			zap.L().Warn("compose failed, skipping company",
				zap.String("company", company.Name),
				zap.Error(err),
			)
			continue
		}

		if err := out.Append(draft); err != nil {
			return composed, eris.Wrap(err, "compose: persist draft")
		}
		composed++

		zap.L().Info("email composed",
			zap.Int("done", composed),
			zap.String("company", company.Name),
		)
	}

	zap.L().Info("composition complete",
		zap.Int("companies", len(companies)),
		zap.Int("composed", composed),
		zap.String("output", out.Path()),
	)
	return composed, nil
}
