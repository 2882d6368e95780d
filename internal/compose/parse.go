package compose

import (
	"encoding/json"
	"strings"
)

// defaultSubject is used when no parser strategy can recover a subject
// line from the model's output.
const defaultSubject = "Partnership Opportunity"

type draftContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// parser attempts to recover a subject/body pair from raw model output.
type parser func(raw string) (draftContent, bool)

// parserChain is tried in order; parseDraft falls back to the default
// subject with the raw text as body when every strategy fails, so parsing
// as a whole never fails.
var parserChain = []parser{
	parseJSONObject,
	parseLabeledLines,
	parseBlankSplit,
}

func parseDraft(raw string) draftContent {
	for _, try := range parserChain {
		if content, ok := try(raw); ok {
			return content
		}
	}
	return draftContent{
		Subject: defaultSubject,
		Body:    strings.TrimSpace(raw),
	}
}

// parseJSONObject takes the substring between the first { and the last }
// and decodes it as a subject/body object.
func parseJSONObject(raw string) (draftContent, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return draftContent{}, false
	}

	var content draftContent
	if err := json.Unmarshal([]byte(raw[start:end+1]), &content); err != nil {
		return draftContent{}, false
	}
	if content.Body == "" {
		return draftContent{}, false
	}
	return content, true
}

// parseLabeledLines scans for a "Subject:" line and treats everything from
// a "Body:" line onward as the body.
func parseLabeledLines(raw string) (draftContent, bool) {
	var (
		subject   string
		bodyLines []string
		inBody    bool
	)
	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(lower, "subject:"):
			subject = strings.TrimSpace(line[strings.Index(line, ":")+1:])
		case strings.HasPrefix(lower, "body:"):
			inBody = true
			if rest := strings.TrimSpace(line[strings.Index(line, ":")+1:]); rest != "" {
				bodyLines = append(bodyLines, rest)
			}
		case inBody:
			bodyLines = append(bodyLines, line)
		}
	}

	if subject == "" {
		return draftContent{}, false
	}
	return draftContent{
		Subject: subject,
		Body:    strings.TrimSpace(strings.Join(bodyLines, "\n")),
	}, true
}

// parseBlankSplit splits on the first blank line, taking the first
// paragraph as the subject and the remainder as the body.
func parseBlankSplit(raw string) (draftContent, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), "\n\n", 2)
	if len(parts) < 2 {
		return draftContent{}, false
	}
	subject := strings.TrimSpace(strings.TrimPrefix(parts[0], "Subject:"))
	return draftContent{
		Subject: subject,
		Body:    strings.TrimSpace(parts[1]),
	}, true
}

// stripDelimiter removes the reserved table delimiter from generated text.
// The prompt forbids it, but the output format cannot depend on model
// compliance.
func stripDelimiter(s string) string {
	return strings.ReplaceAll(s, "|", "-")
}
