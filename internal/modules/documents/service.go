package documents

import (
	"errors"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/pkg/pagination"
	"github.com/biulino/ai-summary-plugin/internal/pkg/response"
	"gorm.io/gorm"
)

// Service owns document storage. The summary pipeline only ever reads
// documents; derived fields live in the summaries table.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetByID returns a document or nil when absent.
func (s *Service) GetByID(id string) (*models.DocumentModel, error) {
	var doc models.DocumentModel
	if err := s.db.First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// GetBySlug returns a document or nil when absent.
func (s *Service) GetBySlug(slug string) (*models.DocumentModel, error) {
	var doc models.DocumentModel
	if err := s.db.First(&doc, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// ListPublishedIDs returns IDs of published documents in stable creation
// order, for client-driven batch pagination.
func (s *Service) ListPublishedIDs(offset, limit int) ([]string, error) {
	var ids []string
	err := s.db.Model(&models.DocumentModel{}).
		Where("is_published = ?", true).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// List returns a page of documents for the admin listing, newest first.
func (s *Service) List(q pagination.Query) ([]models.DocumentModel, response.Pagination, error) {
	var docs []models.DocumentModel
	p, err := pagination.Paginate(
		s.db.Model(&models.DocumentModel{}).Order("created_at DESC"), q, &docs)
	return docs, p, err
}

// Create inserts a new document.
func (s *Service) Create(doc *models.DocumentModel) error {
	return s.db.Create(doc).Error
}

// Update saves all fields of an existing document.
func (s *Service) Update(doc *models.DocumentModel) error {
	return s.db.Save(doc).Error
}

// Delete removes a document by ID.
func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.DocumentModel{}, "id = ?", id).Error
}
