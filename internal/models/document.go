package models

// Document types understood by the summary pipeline.
const (
	DocumentTypeArticle = "article"
	DocumentTypeProduct = "product"
)

// DocumentModel is an article or product page the service summarizes.
type DocumentModel struct {
	Base
	Slug        string      `json:"slug"         gorm:"uniqueIndex;not null"`
	Title       string      `json:"title"        gorm:"not null"`
	Text        string      `json:"text"         gorm:"type:longtext"`
	Type        string      `json:"type"         gorm:"default:'article';index"`
	IsPublished bool        `json:"is_published" gorm:"default:false;index"`
	AuthorName  string      `json:"author_name"`
	AuthorURL   string      `json:"author_url"`
	Tags        StringSlice `json:"tags"         gorm:"type:json;serializer:json"`
	Section     string      `json:"section"`

	// Product-only fields, ignored for articles.
	Price         string `json:"price,omitempty"`
	PriceCurrency string `json:"price_currency,omitempty"`
	SKU           string `json:"sku,omitempty"`
	Brand         string `json:"brand,omitempty"`
	InStock       bool   `json:"in_stock"       gorm:"default:true"`
}

func (DocumentModel) TableName() string { return "documents" }

// IsProduct reports whether product-specific JSON-LD fields apply.
func (d DocumentModel) IsProduct() bool { return d.Type == DocumentTypeProduct }
