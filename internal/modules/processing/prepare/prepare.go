package prepare

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// macroPattern matches [[ ... ]] blocks in document text.
var macroPattern = regexp.MustCompile(`\[\[\s*(.*?)\s*\]\]`)

// ErrEmptyContent means a document has nothing to summarize after
// normalization. Not retryable.
var ErrEmptyContent = errors.New("no content to summarize")

const (
	// DefaultMaxLength bounds the text sent to a provider, in bytes.
	DefaultMaxLength = 8000

	// boundaryRatio is how far back the word-boundary scan may reach.
	boundaryRatio = 0.8

	ellipsis = "…"
)

// Preparer normalizes document bodies for summarization: macro expansion,
// markdown rendering, tag stripping, whitespace collapse and truncation.
type Preparer struct {
	maxLength int
	md        goldmark.Markdown
}

func New() *Preparer {
	return NewWithMaxLength(DefaultMaxLength)
}

func NewWithMaxLength(maxLength int) *Preparer {
	if maxLength < 1 {
		maxLength = DefaultMaxLength
	}
	return &Preparer{
		maxLength: maxLength,
		// Raw HTML passes through; the source is trusted editorial content
		// and everything is stripped to plain text right after.
		md: goldmark.New(goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe())),
	}
}

// Prepare returns the normalized plain text of a document, truncated at a
// word boundary. Returns ErrEmptyContent when nothing summarizable remains.
func (p *Preparer) Prepare(doc *models.DocumentModel) (string, error) {
	fields := Fields{
		"title":  doc.Title,
		"slug":   doc.Slug,
		"type":   doc.Type,
		"author": doc.AuthorName,
	}
	expanded := ExpandMacros(doc.Text, fields)

	var rendered bytes.Buffer
	if err := p.md.Convert([]byte(expanded), &rendered); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	plain, err := extractText(rendered.String())
	if err != nil {
		return "", fmt.Errorf("strip markup: %w", err)
	}

	// Collapse whitespace runs to single spaces and trim.
	plain = strings.Join(strings.Fields(plain), " ")
	if plain == "" {
		return "", ErrEmptyContent
	}

	return p.truncate(plain), nil
}

func extractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	return doc.Text(), nil
}

// truncate cuts text to maxLength, backing up to the nearest space that lies
// at or beyond boundaryRatio of the window, and marks the cut with an
// ellipsis.
func (p *Preparer) truncate(text string) string {
	if len(text) <= p.maxLength {
		return text
	}

	cut := text[:p.maxLength]
	if lastSpace := strings.LastIndexByte(cut, ' '); lastSpace > int(float64(p.maxLength)*boundaryRatio) {
		cut = cut[:lastSpace]
	}
	return cut + ellipsis
}
