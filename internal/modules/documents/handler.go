package documents

import (
	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/pkg/pagination"
	"github.com/biulino/ai-summary-plugin/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles admin document CRUD.
type Handler struct {
	svc    *Service
	logger *zap.Logger

	// afterSave runs after a document is created or updated, so saving a
	// published document can trigger summary generation.
	afterSave func(doc *models.DocumentModel)
}

func NewHandler(svc *Service, logger *zap.Logger, afterSave func(doc *models.DocumentModel)) *Handler {
	return &Handler{svc: svc, logger: logger.Named("documents"), afterSave: afterSave}
}

// RegisterRoutes mounts document routes onto an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/documents")
	docs.GET("", h.list)
	docs.GET("/:id", h.get)
	docs.POST("", h.create)
	docs.PUT("/:id", h.update)
	docs.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	docs, p, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		h.logger.Error("list documents", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paginated(c, docs, p)
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		h.logger.Error("get document", zap.Error(err))
		response.InternalError(c)
		return
	}
	if doc == nil {
		response.NotFound(c, "Document not found", "No document found with the specified ID.")
		return
	}
	response.OK(c, doc)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDocumentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Type != "" && dto.Type != models.DocumentTypeArticle && dto.Type != models.DocumentTypeProduct {
		response.BadRequest(c, "type must be article or product")
		return
	}

	doc := dto.toModel()
	if err := h.svc.Create(&doc); err != nil {
		h.logger.Error("create document", zap.Error(err))
		response.InternalError(c)
		return
	}

	if h.afterSave != nil {
		h.afterSave(&doc)
	}
	response.Created(c, doc)
}

func (h *Handler) update(c *gin.Context) {
	doc, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		h.logger.Error("get document", zap.Error(err))
		response.InternalError(c)
		return
	}
	if doc == nil {
		response.NotFound(c, "Document not found", "No document found with the specified ID.")
		return
	}

	var dto UpdateDocumentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto.apply(doc)

	if err := h.svc.Update(doc); err != nil {
		h.logger.Error("update document", zap.Error(err))
		response.InternalError(c)
		return
	}

	if h.afterSave != nil {
		h.afterSave(doc)
	}
	response.OK(c, doc)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		h.logger.Error("delete document", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.NoContent(c)
}
