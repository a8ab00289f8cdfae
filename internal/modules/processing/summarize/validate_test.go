package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRawPlainText(t *testing.T) {
	got, err := ValidateRaw("  A plain text summary.  \n")
	require.NoError(t, err)

	assert.Equal(t, "A plain text summary.", got.SummaryText)
	assert.Empty(t, got.KeyPoints)
	assert.Empty(t, got.FAQItems)
}

func TestValidateRawEmpty(t *testing.T) {
	_, err := ValidateRaw("   \n\t")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateRawStructured(t *testing.T) {
	raw := `{
		"summary": "The gist.",
		"key_points": ["a", "", "  ", "b"],
		"faq": [
			{"question": "Q1?", "answer": "A1."},
			{"question": "Q2?"},
			{"answer": "A2."},
			{"question": " ", "answer": "A3."}
		]
	}`

	got, err := ValidateRaw(raw)
	require.NoError(t, err)

	assert.Equal(t, "The gist.", got.SummaryText)
	assert.Equal(t, []string{"a", "b"}, got.KeyPoints)
	require.Len(t, got.FAQItems, 1)
	assert.Equal(t, "Q1?", got.FAQItems[0].Question)
	assert.Equal(t, "A1.", got.FAQItems[0].Answer)
}

func TestValidateRawFencedJSON(t *testing.T) {
	raw := "```json\n{\"summary\": \"Fenced.\", \"key_points\": [\"x\"]}\n```"

	got, err := ValidateRaw(raw)
	require.NoError(t, err)

	assert.Equal(t, "Fenced.", got.SummaryText)
	assert.Equal(t, []string{"x"}, got.KeyPoints)
}

func TestValidateRawMissingSummary(t *testing.T) {
	_, err := ValidateRaw(`{"key_points": ["a"]}`)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateRawMalformedJSON(t *testing.T) {
	// Starts as a JSON object, so no plain-text fallback applies.
	_, err := ValidateRaw(`{"summary": "broken`)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateRawKeepsMarkupLiteral(t *testing.T) {
	// Stored text is plain; entity-encoding is the renderer's job. Escaping
	// here too would double-encode at the HTML boundary.
	got, err := ValidateRaw(`{"summary": "<b>bold</b> & more"}`)
	require.NoError(t, err)

	assert.Equal(t, "<b>bold</b> & more", got.SummaryText)
}

func TestValidateRawStripsControlCharacters(t *testing.T) {
	got, err := ValidateRaw("{\"summary\": \"line one\\nline\\u0000 two\\tend\"}")
	require.NoError(t, err)

	assert.Equal(t, "line one\nline two\tend", got.SummaryText)
}
