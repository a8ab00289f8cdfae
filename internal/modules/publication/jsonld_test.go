package publication

import (
	"testing"
	"time"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite() settings.SiteSettings {
	return settings.SiteSettings{Name: "Example Site", URL: "https://example.com"}
}

func testDocument() *models.DocumentModel {
	return &models.DocumentModel{
		Base: models.Base{
			ID:        "doc-1",
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			UpdatedAt: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		},
		Slug:       "hello-world",
		Title:      "Hello World",
		Text:       "one two three four",
		Type:       models.DocumentTypeArticle,
		AuthorName: "Jo",
		AuthorURL:  "https://example.com/jo",
		Tags:       models.StringSlice{"go", "testing"},
		Section:    "Tech",
	}
}

func testSummary() *models.SummaryModel {
	return &models.SummaryModel{
		DocumentID:  "doc-1",
		SummaryText: "A summary.",
		KeyPoints:   models.StringSlice{"point one", "point two"},
		FAQItems:    models.FAQSlice{{Question: "Q?", Answer: "A."}},
		Provider:    models.ProviderOpenRouter,
		GeneratedAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Done:        true,
	}
}

func TestBuildArticle(t *testing.T) {
	data := Build(testDocument(), testSummary(), testSite())

	assert.Equal(t, "https://schema.org", data["@context"])
	assert.Equal(t, "Article", data["@type"])
	assert.Equal(t, "Hello World", data["name"])
	assert.Equal(t, "https://example.com/hello-world", data["url"])
	assert.Equal(t, "A summary.", data["description"])
	assert.Equal(t, "2026-01-02T03:04:05Z", data["datePublished"])
	assert.Equal(t, "Tech", data["articleSection"])
	assert.Equal(t, "go, testing", data["keywords"])
	assert.Equal(t, 4, data["wordCount"])
	assert.Equal(t, []string{"point one", "point two"}, data["keyPoints"])

	author, ok := data["author"].(JSONLD)
	require.True(t, ok)
	assert.Equal(t, "Person", author["@type"])
	assert.Equal(t, "Jo", author["name"])

	publisher, ok := data["publisher"].(JSONLD)
	require.True(t, ok)
	assert.Equal(t, "Organization", publisher["@type"])
	assert.Equal(t, "Example Site", publisher["name"])

	faq, ok := data["mainEntity"].(JSONLD)
	require.True(t, ok)
	assert.Equal(t, "FAQPage", faq["@type"])
	questions, ok := faq["mainEntity"].([]JSONLD)
	require.True(t, ok)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q?", questions[0]["name"])

	ai, ok := data["aiSummary"].(JSONLD)
	require.True(t, ok)
	assert.Equal(t, "DigitalDocument", ai["@type"])
	assert.Equal(t, models.ProviderOpenRouter, ai["provider"])
}

func TestBuildProduct(t *testing.T) {
	doc := testDocument()
	doc.Type = models.DocumentTypeProduct
	doc.Brand = "Acme"
	doc.SKU = "SKU-42"
	doc.Price = "19.99"
	doc.PriceCurrency = "EUR"
	doc.InStock = true

	data := Build(doc, testSummary(), testSite())

	assert.Equal(t, "Product", data["@type"])
	assert.Equal(t, "SKU-42", data["sku"])

	brand, ok := data["brand"].(JSONLD)
	require.True(t, ok)
	assert.Equal(t, "Acme", brand["name"])

	offers, ok := data["offers"].(JSONLD)
	require.True(t, ok)
	assert.Equal(t, "19.99", offers["price"])
	assert.Equal(t, "EUR", offers["priceCurrency"])
	assert.Equal(t, "https://schema.org/InStock", offers["availability"])

	assert.NotContains(t, data, "articleSection")
	assert.NotContains(t, data, "wordCount")
}

func TestBuildOutOfStock(t *testing.T) {
	doc := testDocument()
	doc.Type = models.DocumentTypeProduct
	doc.Price = "5.00"
	doc.InStock = false

	data := Build(doc, testSummary(), testSite())
	offers := data["offers"].(JSONLD)
	assert.Equal(t, "https://schema.org/OutOfStock", offers["availability"])
}

func TestValidateAcceptsBuiltDocument(t *testing.T) {
	data := Build(testDocument(), testSummary(), testSite())
	assert.NoError(t, Validate(data))
}

func TestValidateRejections(t *testing.T) {
	valid := func() JSONLD { return Build(testDocument(), testSummary(), testSite()) }

	tests := []struct {
		name   string
		mutate func(JSONLD)
	}{
		{"unknown type", func(d JSONLD) { d["@type"] = "Foo" }},
		{"wrong context", func(d JSONLD) { d["@context"] = "http://schema.org" }},
		{"missing name", func(d JSONLD) { d["name"] = "" }},
		{"missing url", func(d JSONLD) { delete(d, "url") }},
		{"relative url", func(d JSONLD) { d["url"] = "/hello-world" }},
		{"bad scheme", func(d JSONLD) { d["url"] = "ftp://example.com/x" }},
		{"bad date", func(d JSONLD) { d["datePublished"] = "yesterday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid()
			tt.mutate(data)
			assert.Error(t, Validate(data))
		})
	}
}

func TestValidateAllowedTypes(t *testing.T) {
	for _, typ := range []string{"Article", "Product", "BlogPosting", "WebPage"} {
		data := Build(testDocument(), testSummary(), testSite())
		data["@type"] = typ
		assert.NoError(t, Validate(data), typ)
	}
}
