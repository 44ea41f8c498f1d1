package interview

import (
	"encoding/json"
	"strings"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

// CompletionToken is the sentinel the interviewer model emits when it
// has collected every profile field.
const CompletionToken = "INTERVIEW_COMPLETE"

// ParseCompletion inspects a model reply for the completion sentinel
// and the profile JSON that follows it. On completion it returns the
// user-visible text with the sentinel and JSON stripped, the parsed
// profile, and true. A sentinel without parseable JSON is treated as
// not complete and the raw text comes back unchanged, so the
// interview simply continues.
func ParseCompletion(raw string) (string, *model.Profile, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(raw, CompletionToken) {
		return trimmed, nil, false
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return trimmed, nil, false
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(raw[start:end+1]), &profile); err != nil {
		return trimmed, nil, false
	}

	clean := raw[:start] + raw[end+1:]
	clean = strings.ReplaceAll(clean, CompletionToken, "")
	return strings.TrimSpace(clean), &profile, true
}
