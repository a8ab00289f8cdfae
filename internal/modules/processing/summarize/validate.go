package summarize

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/biulino/ai-summary-plugin/internal/models"
)

// Validated is the canonical shape extracted from a provider response.
type Validated struct {
	SummaryText string
	KeyPoints   []string
	FAQItems    []models.FAQItem
}

type structuredPayload struct {
	Summary   *string  `json:"summary"`
	KeyPoints []string `json:"key_points"`
	FAQ       []struct {
		Question *string `json:"question"`
		Answer   *string `json:"answer"`
	} `json:"faq"`
}

// ValidateRaw turns a raw provider response into the canonical summary shape.
//
// Responses that are JSON objects (possibly wrapped in markdown code fences)
// take the structured path: a string `summary` field is required, blank key
// points are dropped, FAQ entries are kept only with both fields present, and
// every string is trimmed with control characters stripped. Anything else is
// treated as a free-text summary and accepted verbatim after trimming.
func ValidateRaw(raw string) (Validated, error) {
	cleaned := stripFences(raw)

	if !strings.HasPrefix(cleaned, "{") {
		text := strings.TrimSpace(raw)
		if text == "" {
			return Validated{}, fmt.Errorf("%w: empty response", ErrValidation)
		}
		return Validated{SummaryText: text}, nil
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Validated{}, fmt.Errorf("%w: malformed JSON: %v", ErrValidation, err)
	}
	if payload.Summary == nil {
		return Validated{}, fmt.Errorf("%w: missing summary field", ErrValidation)
	}

	out := Validated{SummaryText: sanitize(*payload.Summary)}
	if out.SummaryText == "" {
		return Validated{}, fmt.Errorf("%w: summary is empty", ErrValidation)
	}

	for _, point := range payload.KeyPoints {
		if p := sanitize(point); p != "" {
			out.KeyPoints = append(out.KeyPoints, p)
		}
	}
	for _, item := range payload.FAQ {
		if item.Question == nil || item.Answer == nil {
			continue
		}
		q, a := sanitize(*item.Question), sanitize(*item.Answer)
		if q == "" || a == "" {
			continue
		}
		out.FAQItems = append(out.FAQItems, models.FAQItem{Question: q, Answer: a})
	}

	return out, nil
}

// stripFences removes markdown code fences around a JSON object and cuts the
// outermost {...} span, since models like to wrap structured output.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, prefix := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimPrefix(cleaned, prefix)
			break
		}
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "{") {
		if end := strings.LastIndex(cleaned, "}"); end > 0 {
			cleaned = cleaned[:end+1]
		}
	}
	return cleaned
}

// sanitize trims the string and strips control characters. Stored text stays
// plain; escaping happens once, at the HTML rendering boundary, so markup in
// a response never round-trips into double-escaped entities.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
