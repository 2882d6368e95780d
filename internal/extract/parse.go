package extract

import (
	"strings"
)

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}

// jsonBlock extracts the candidate JSON block bounded by the first open
// delimiter and the last close delimiter. Models often wrap JSON in prose;
// the bounded block is the only part handed to the JSON decoder.
func jsonBlock(text string, open, close byte) (string, bool) {
	text = stripFences(text)

	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// redacted reports whether a contact string is visibly partial: masked with
// asterisk runs or cut off with an ellipsis. Such values are worthless for
// outreach and are dropped in favor of the empty string.
func redacted(s string) bool {
	return strings.Contains(s, "*") ||
		strings.Contains(s, "...") ||
		strings.Contains(s, "…")
}

// scrubContact returns s unless it is redacted, in which case it returns "".
func scrubContact(s string) string {
	if redacted(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
