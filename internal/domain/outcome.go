package domain

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// OutcomeKind tags the result of one check-in attempt. Exactly one kind
// applies to any response.
type OutcomeKind string

const (
	OutcomeSuccess     OutcomeKind = "success"
	OutcomeDuplicate   OutcomeKind = "duplicate"
	OutcomeAuthFailure OutcomeKind = "auth_failure"
	OutcomeError       OutcomeKind = "error"
)

// Outcome is the classified result of a check-in response. Message is
// always non-empty and suitable for direct display.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

// Succeeded reports whether the outcome counts as a successful run.
// A duplicate check-in means the daily reward was already collected, so
// it counts as success.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeDuplicate
}

// MatchPatterns holds the body phrases used to disambiguate response
// codes the endpoint overloads. The phrases are site- and locale-dependent,
// so they live in the site profile rather than in code.
type MatchPatterns struct {
	Duplicate []string
}

// DefaultMatchPatterns returns the phrases Discourse check-in plugins are
// known to emit for a repeated same-day attempt.
func DefaultMatchPatterns() MatchPatterns {
	return MatchPatterns{
		Duplicate: []string{"already checked in", "已经签到过", "duplicate"},
	}
}

func (p MatchPatterns) duplicatePhrases() []string {
	if len(p.Duplicate) == 0 {
		return DefaultMatchPatterns().Duplicate
	}
	return p.Duplicate
}

const (
	errorBodySnippetLen = 200

	fallbackSuccessMessage = "check-in completed"
	fallbackRawMessage     = "check-in completed (non-JSON response)"
)

// checkinBody is the structured shape a check-in endpoint may answer with.
// The message can arrive under several keys depending on plugin version.
type checkinBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
	Detail  string `json:"detail"`
}

func (b checkinBody) displayMessage() string {
	for _, candidate := range []string{b.Message, b.Msg, b.Detail} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return fallbackSuccessMessage
}

// parsedBody is the explicit two-variant result of interpreting a response
// body: either a structured payload or raw text.
type parsedBody struct {
	structured bool
	payload    checkinBody
}

func parseCheckinBody(body string) parsedBody {
	var payload checkinBody
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return parsedBody{}
	}
	return parsedBody{structured: true, payload: payload}
}

// Classify maps a raw check-in response to an Outcome. It is pure and
// total: any (status, body) pair yields exactly one outcome.
//
// The endpoint is not under our control, so classification is defensive:
// a 200 with an unrecognizable body still counts as success, and every
// other surprise degrades to an error carrying enough context to debug.
func Classify(status int, body string, patterns MatchPatterns) Outcome {
	switch status {
	case http.StatusUnprocessableEntity:
		lower := strings.ToLower(body)
		for _, phrase := range patterns.duplicatePhrases() {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				return Outcome{Kind: OutcomeDuplicate, Message: "already checked in today"}
			}
		}
		return Outcome{Kind: OutcomeError, Message: "security validation failed, refresh the page or log in again (422)"}

	case http.StatusForbidden:
		return Outcome{Kind: OutcomeAuthFailure, Message: "insufficient permission or not logged in (403)"}

	case http.StatusOK:
		parsed := parseCheckinBody(body)
		if !parsed.structured {
			message := strings.TrimSpace(body)
			if message == "" {
				message = fallbackRawMessage
			}
			return Outcome{Kind: OutcomeSuccess, Message: message}
		}
		if parsed.payload.Success {
			return Outcome{Kind: OutcomeSuccess, Message: parsed.payload.displayMessage()}
		}
		return Outcome{Kind: OutcomeError, Message: "check-in failed: " + parsed.payload.displayMessage()}
	}

	snippet := body
	if len(snippet) > errorBodySnippetLen {
		snippet = snippet[:errorBodySnippetLen]
	}
	return Outcome{Kind: OutcomeError, Message: fmt.Sprintf("unexpected status %d: %s", status, snippet)}
}
