package models

import "time"

// Summary providers.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// SummaryModel holds the AI-generated summary fields for one document.
// One row per document, last write wins.
type SummaryModel struct {
	Base
	DocumentID  string      `json:"document_id"  gorm:"uniqueIndex;not null"`
	SummaryText string      `json:"summary"      gorm:"type:text"`
	KeyPoints   StringSlice `json:"key_points"   gorm:"type:json"`
	FAQItems    FAQSlice    `json:"faq"          gorm:"type:json"`
	Provider    string      `json:"provider"     gorm:"index"`
	GeneratedAt time.Time   `json:"generated_at"`
	Done        bool        `json:"done"         gorm:"default:false;index"`
}

func (SummaryModel) TableName() string { return "summaries" }

// HasSummary reports whether a non-empty summary is stored, which makes the
// record valid and exempt from regeneration unless forced.
func (s SummaryModel) HasSummary() bool { return s.SummaryText != "" }
