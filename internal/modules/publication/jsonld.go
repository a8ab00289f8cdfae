package publication

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
)

const schemaContext = "https://schema.org"

// allowedTypes is the fixed @type allow-list for published structured data.
var allowedTypes = map[string]bool{
	"Article":     true,
	"Product":     true,
	"BlogPosting": true,
	"WebPage":     true,
}

// JSONLD is an ordered-enough map alias; schema.org consumers do not care
// about key order and encoding/json sorts keys deterministically.
type JSONLD map[string]interface{}

// Build assembles the schema.org document for a document and its summary.
func Build(doc *models.DocumentModel, summary *models.SummaryModel, site settings.SiteSettings) JSONLD {
	pageURL := strings.TrimRight(site.URL, "/") + "/" + doc.Slug

	data := JSONLD{
		"@context":      schemaContext,
		"@type":         schemaType(doc),
		"name":          doc.Title,
		"url":           pageURL,
		"description":   summary.SummaryText,
		"datePublished": doc.CreatedAt.Format(time.RFC3339),
		"dateModified":  doc.UpdatedAt.Format(time.RFC3339),
		"publisher": JSONLD{
			"@type": "Organization",
			"name":  site.Name,
			"url":   site.URL,
		},
	}

	if doc.AuthorName != "" {
		author := JSONLD{"@type": "Person", "name": doc.AuthorName}
		if doc.AuthorURL != "" {
			author["url"] = doc.AuthorURL
		}
		data["author"] = author
	}

	if len(summary.KeyPoints) > 0 {
		data["keyPoints"] = []string(summary.KeyPoints)
	}
	if len(summary.FAQItems) > 0 {
		data["mainEntity"] = faqEntity(summary.FAQItems)
	}

	if doc.IsProduct() {
		applyProductFields(data, doc)
	} else {
		applyArticleFields(data, doc)
	}

	data["aiSummary"] = JSONLD{
		"@type":         "DigitalDocument",
		"provider":      summary.Provider,
		"dateGenerated": summary.GeneratedAt.Format(time.RFC3339),
	}

	return data
}

func schemaType(doc *models.DocumentModel) string {
	if doc.IsProduct() {
		return "Product"
	}
	return "Article"
}

func faqEntity(items models.FAQSlice) JSONLD {
	questions := make([]JSONLD, 0, len(items))
	for _, item := range items {
		questions = append(questions, JSONLD{
			"@type": "Question",
			"name":  item.Question,
			"acceptedAnswer": JSONLD{
				"@type": "Answer",
				"text":  item.Answer,
			},
		})
	}
	return JSONLD{
		"@type":      "FAQPage",
		"mainEntity": questions,
	}
}

func applyArticleFields(data JSONLD, doc *models.DocumentModel) {
	data["headline"] = doc.Title
	if doc.Section != "" {
		data["articleSection"] = doc.Section
	}
	if len(doc.Tags) > 0 {
		data["keywords"] = strings.Join(doc.Tags, ", ")
	}
	data["wordCount"] = len(strings.Fields(doc.Text))
}

func applyProductFields(data JSONLD, doc *models.DocumentModel) {
	if doc.Brand != "" {
		data["brand"] = JSONLD{"@type": "Brand", "name": doc.Brand}
	}
	if doc.SKU != "" {
		data["sku"] = doc.SKU
	}
	if doc.Price != "" {
		availability := "https://schema.org/OutOfStock"
		if doc.InStock {
			availability = "https://schema.org/InStock"
		}
		data["offers"] = JSONLD{
			"@type":         "Offer",
			"price":         doc.Price,
			"priceCurrency": doc.PriceCurrency,
			"availability":  availability,
		}
	}
}

// Validate checks a structured-data object before it is served. Required
// top-level fields must be present and non-empty, @context must match the
// schema namespace exactly, @type must be on the allow-list, url must be an
// absolute http(s) URL, and dates must be RFC3339.
func Validate(data JSONLD) error {
	for _, field := range []string{"@context", "@type", "name", "url"} {
		value, _ := data[field].(string)
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("structured data: missing required field %q", field)
		}
	}

	if data["@context"] != schemaContext {
		return fmt.Errorf("structured data: unexpected @context %q", data["@context"])
	}
	if typ, _ := data["@type"].(string); !allowedTypes[typ] {
		return fmt.Errorf("structured data: @type %q not allowed", typ)
	}

	raw, _ := data["url"].(string)
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("structured data: url %q is not an absolute http(s) URL", raw)
	}

	for _, field := range []string{"datePublished", "dateModified"} {
		value, ok := data[field].(string)
		if !ok {
			continue
		}
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return fmt.Errorf("structured data: %s %q is not RFC3339", field, value)
		}
	}

	return nil
}
