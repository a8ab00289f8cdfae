package documents

import "github.com/biulino/ai-summary-plugin/internal/models"

// CreateDocumentDTO is the request body for creating a document.
type CreateDocumentDTO struct {
	Slug        string   `json:"slug"  binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Text        string   `json:"text"  binding:"required"`
	Type        string   `json:"type"`
	IsPublished *bool    `json:"is_published"`
	AuthorName  string   `json:"author_name"`
	AuthorURL   string   `json:"author_url"`
	Tags        []string `json:"tags"`
	Section     string   `json:"section"`

	Price         string `json:"price"`
	PriceCurrency string `json:"price_currency"`
	SKU           string `json:"sku"`
	Brand         string `json:"brand"`
	InStock       *bool  `json:"in_stock"`
}

// UpdateDocumentDTO is the request body for updating a document; absent
// fields keep their current values.
type UpdateDocumentDTO struct {
	Slug        *string  `json:"slug"`
	Title       *string  `json:"title"`
	Text        *string  `json:"text"`
	Type        *string  `json:"type"`
	IsPublished *bool    `json:"is_published"`
	AuthorName  *string  `json:"author_name"`
	AuthorURL   *string  `json:"author_url"`
	Tags        []string `json:"tags"`
	Section     *string  `json:"section"`

	Price         *string `json:"price"`
	PriceCurrency *string `json:"price_currency"`
	SKU           *string `json:"sku"`
	Brand         *string `json:"brand"`
	InStock       *bool   `json:"in_stock"`
}

func (dto CreateDocumentDTO) toModel() models.DocumentModel {
	doc := models.DocumentModel{
		Slug:          dto.Slug,
		Title:         dto.Title,
		Text:          dto.Text,
		Type:          dto.Type,
		AuthorName:    dto.AuthorName,
		AuthorURL:     dto.AuthorURL,
		Tags:          dto.Tags,
		Section:       dto.Section,
		Price:         dto.Price,
		PriceCurrency: dto.PriceCurrency,
		SKU:           dto.SKU,
		Brand:         dto.Brand,
		InStock:       true,
	}
	if doc.Type == "" {
		doc.Type = models.DocumentTypeArticle
	}
	if dto.IsPublished != nil {
		doc.IsPublished = *dto.IsPublished
	}
	if dto.InStock != nil {
		doc.InStock = *dto.InStock
	}
	return doc
}

func (dto UpdateDocumentDTO) apply(doc *models.DocumentModel) {
	if dto.Slug != nil {
		doc.Slug = *dto.Slug
	}
	if dto.Title != nil {
		doc.Title = *dto.Title
	}
	if dto.Text != nil {
		doc.Text = *dto.Text
	}
	if dto.Type != nil {
		doc.Type = *dto.Type
	}
	if dto.IsPublished != nil {
		doc.IsPublished = *dto.IsPublished
	}
	if dto.AuthorName != nil {
		doc.AuthorName = *dto.AuthorName
	}
	if dto.AuthorURL != nil {
		doc.AuthorURL = *dto.AuthorURL
	}
	if dto.Tags != nil {
		doc.Tags = dto.Tags
	}
	if dto.Section != nil {
		doc.Section = *dto.Section
	}
	if dto.Price != nil {
		doc.Price = *dto.Price
	}
	if dto.PriceCurrency != nil {
		doc.PriceCurrency = *dto.PriceCurrency
	}
	if dto.SKU != nil {
		doc.SKU = *dto.SKU
	}
	if dto.Brand != nil {
		doc.Brand = *dto.Brand
	}
	if dto.InStock != nil {
		doc.InStock = *dto.InStock
	}
}
