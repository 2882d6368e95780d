package compose

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/store"
)

type fakeLLM struct {
	system    string
	user      string
	responses []string
	calls     int
	err       error
}

func (f *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	f.system = system
	f.user = user
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

var testSender = Sender{
	Name:         "Acme Consulting",
	Description:  "Cloud migration and automation services",
	Instructions: "Mention our free assessment",
}

func TestComposeParsesJSONResponse(t *testing.T) {
	fake := &fakeLLM{responses: []string{
		"Here is the email:\n```json\n{\"subject\": \"Boost your bakery\", \"body\": \"Hi there,\\n\\nWe noticed your pastries.\"}\n```",
	}}

	draft, err := New(fake).Compose(context.Background(), model.Company{
		Name:     "Crumb & Co",
		Services: "artisan breads, pastries",
		Email:    "hello@crumb.example",
	}, testSender)
	require.NoError(t, err)

	assert.Equal(t, "Crumb & Co", draft.Company)
	assert.Equal(t, "hello@crumb.example", draft.Email)
	assert.Equal(t, "Boost your bakery", draft.Subject)
	assert.Equal(t, "Hi there,\n\nWe noticed your pastries.", draft.Body)

	assert.Contains(t, fake.user, "Crumb & Co")
	assert.Contains(t, fake.user, "artisan breads, pastries")
	assert.Contains(t, fake.user, "Acme Consulting")
	assert.Contains(t, fake.user, "Mention our free assessment")
}

func TestComposeFallsBackToLabeledLines(t *testing.T) {
	fake := &fakeLLM{responses: []string{
		"Subject: A quick idea for Crumb & Co\nBody: Hi team,\nWe help bakeries automate ordering.\nBest, Acme",
	}}

	draft, err := New(fake).Compose(context.Background(), model.Company{Name: "Crumb & Co", Email: "x@y.example"}, testSender)
	require.NoError(t, err)

	assert.Equal(t, "A quick idea for Crumb & Co", draft.Subject)
	assert.Equal(t, "Hi team,\nWe help bakeries automate ordering.\nBest, Acme", draft.Body)
}

func TestComposeFallsBackToBlankLineSplit(t *testing.T) {
	fake := &fakeLLM{responses: []string{
		"Subject: Fresh ideas\n\nHi folks, let's talk about your storefront.",
	}}

	draft, err := New(fake).Compose(context.Background(), model.Company{Name: "Crumb & Co", Email: "x@y.example"}, testSender)
	require.NoError(t, err)

	assert.Equal(t, "Fresh ideas", draft.Subject)
	assert.Equal(t, "Hi folks, let's talk about your storefront.", draft.Body)
}

func TestComposeDefaultsWhenUnparseable(t *testing.T) {
	fake := &fakeLLM{responses: []string{"Hi folks, one short line with no structure."}}

	draft, err := New(fake).Compose(context.Background(), model.Company{Name: "Crumb & Co", Email: "x@y.example"}, testSender)
	require.NoError(t, err)

	assert.Equal(t, "Partnership Opportunity", draft.Subject)
	assert.Equal(t, "Hi folks, one short line with no structure.", draft.Body)
}

func TestComposeStripsDelimiterFromOutput(t *testing.T) {
	fake := &fakeLLM{responses: []string{
		`{"subject": "Growth | Partnership", "body": "We deliver value | fast | reliably."}`,
	}}

	draft, err := New(fake).Compose(context.Background(), model.Company{Name: "Crumb & Co", Email: "x@y.example"}, testSender)
	require.NoError(t, err)

	assert.NotContains(t, draft.Subject, "|")
	assert.NotContains(t, draft.Body, "|")
	assert.Equal(t, "Growth - Partnership", draft.Subject)
}

func TestComposePromptForbidsDelimiter(t *testing.T) {
	fake := &fakeLLM{responses: []string{`{"subject": "s", "body": "b"}`}}

	_, err := New(fake).Compose(context.Background(), model.Company{Name: "Crumb & Co"}, testSender)
	require.NoError(t, err)
	assert.Contains(t, fake.system, `"|"`)
}

func TestComposeAllSkipsRowsWithoutEmail(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "companies.csv")

	pw, err := store.NewProspectWriter(in)
	require.NoError(t, err)
	require.NoError(t, pw.Append(
		model.Company{Name: "Crumb & Co", Services: "breads", Email: "hello@crumb.example"},
		model.Company{Name: "No Contact LLC", Services: "mystery"},
		model.Company{Name: "Flour Power", Services: "cakes", Email: "info@flour.example"},
	))
	require.NoError(t, pw.Close())

	out, err := store.NewDraftWriter(filepath.Join(dir, "drafts.csv"))
	require.NoError(t, err)
	defer out.Close()

	fake := &fakeLLM{responses: []string{`{"subject": "Hello", "body": "A short note."}`}}
	count, err := New(fake).ComposeAll(context.Background(), in, testSender, out)
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, 2, fake.calls)

	drafts, err := store.ReadDrafts(out.Path())
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Crumb & Co", drafts[0].Company)
	assert.Equal(t, "Flour Power", drafts[1].Company)
}

func TestComposeAllIsolatesPerCompanyFailures(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "companies.csv")

	pw, err := store.NewProspectWriter(in)
	require.NoError(t, err)
	require.NoError(t, pw.Append(
		model.Company{Name: "First", Email: "a@x.example"},
		model.Company{Name: "Second", Email: "b@x.example"},
	))
	require.NoError(t, pw.Close())

	out, err := store.NewDraftWriter(filepath.Join(dir, "drafts.csv"))
	require.NoError(t, err)
	defer out.Close()

	// Every call errors; the batch must still complete with zero drafts
	// rather than aborting on the first company.
	fake := &fakeLLM{err: assert.AnError}
	count, err := New(fake).ComposeAll(context.Background(), in, testSender, out)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 2, fake.calls)
}

func TestParseDraftChainOrder(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		subject string
		body    string
	}{
		{
			name:    "json wins over labels",
			raw:     "Subject: ignored\n{\"subject\": \"from json\", \"body\": \"json body\"}",
			subject: "from json",
			body:    "json body",
		},
		{
			name:    "json without body falls through",
			raw:     "{\"subject\": \"only subject\"}\n\nSubject: labeled\nBody: labeled body",
			subject: "labeled",
			body:    "labeled body",
		},
		{
			name:    "malformed json falls through to split",
			raw:     "{not json at all\n\nthe rest of the text",
			subject: "{not json at all",
			body:    "the rest of the text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := parseDraft(tt.raw)
			assert.Equal(t, tt.subject, content.Subject)
			assert.Equal(t, tt.body, content.Body)
		})
	}
}
