package admin

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/modules/processing/summarize"
	"github.com/biulino/ai-summary-plugin/internal/pkg/batch"
	"github.com/biulino/ai-summary-plugin/internal/pkg/jwt"
	"github.com/biulino/ai-summary-plugin/internal/pkg/metrics"
	"github.com/biulino/ai-summary-plugin/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	tokenTTL = 24 * time.Hour

	defaultBatchSize = 10
	maxBatchSize     = 50
)

type documentLister interface {
	GetByID(id string) (*models.DocumentModel, error)
	ListPublishedIDs(offset, limit int) ([]string, error)
}

type summaryAdminStore interface {
	Get(ctx context.Context, documentID string) (*models.SummaryModel, error)
	Delete(ctx context.Context, documentID string) error
	ClearCache(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*summarize.Stats, error)
}

// Handler owns the administrative surface: login, regeneration triggers,
// stats, summary deletion and cache maintenance.
type Handler struct {
	pipeline  *summarize.Pipeline
	documents documentLister
	store     summaryAdminStore
	signer    *jwt.Signer
	adminKey  string
	metrics   *metrics.Recorder
	logger    *zap.Logger
}

func NewHandler(
	pipeline *summarize.Pipeline,
	documents documentLister,
	store summaryAdminStore,
	signer *jwt.Signer,
	adminKey string,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		pipeline:  pipeline,
		documents: documents,
		store:     store,
		signer:    signer,
		adminKey:  adminKey,
		metrics:   recorder,
		logger:    logger.Named("admin"),
	}
}

// RegisterLogin mounts the unauthenticated login route.
func (h *Handler) RegisterLogin(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
}

// RegisterRoutes mounts the authenticated admin routes. Generation routes
// additionally carry the rate-limit middleware, applied by the caller.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	rg.POST("/generate/:id", rateLimit, h.generateOne)
	rg.POST("/generate", rateLimit, h.generateBulk)
	rg.GET("/stats", h.stats)
	rg.GET("/metrics", h.runtimeMetrics)
	rg.DELETE("/summary/:id", h.deleteSummary)
	rg.POST("/cache/clear", h.clearCache)
}

type loginDTO struct {
	Key string `json:"key" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if h.adminKey == "" || subtle.ConstantTimeCompare([]byte(dto.Key), []byte(h.adminKey)) != 1 {
		response.Unauthorized(c)
		return
	}

	token, err := h.signer.Sign("admin", tokenTTL)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"token": token, "expires_in": int(tokenTTL.Seconds())})
}

// generateOne forces regeneration for one document and returns the stored
// record on success. A missing document is the caller's mistake and maps to
// 404; a generation failure for an existing document maps to 500.
func (h *Handler) generateOne(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.documents.GetByID(id)
	if err != nil {
		h.logger.Error("document lookup failed", zap.String("document_id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	if doc == nil {
		response.NotFound(c, "Document not found", "No document exists with that id.")
		return
	}

	if !h.pipeline.Generate(c.Request.Context(), id, true) {
		h.logger.Error("generation failed", zap.String("document_id", id))
		response.InternalError(c)
		return
	}

	summary, err := h.store.Get(c.Request.Context(), id)
	if err != nil || summary == nil {
		h.logger.Error("summary readback failed", zap.String("document_id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, summary)
}

type bulkDTO struct {
	BatchSize int  `json:"batch_size"`
	Offset    int  `json:"offset"`
	Force     bool `json:"force"`
}

type bulkResult struct {
	Processed  int  `json:"processed"`
	Errors     int  `json:"errors"`
	Skipped    int  `json:"skipped"`
	Completed  bool `json:"completed"`
	NextOffset int  `json:"next_offset"`
}

// generateBulk runs one paginated batch; the client drives pagination by
// re-posting with next_offset until completed is true.
func (h *Handler) generateBulk(c *gin.Context) {
	var dto bulkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.BatchSize < 1 {
		dto.BatchSize = defaultBatchSize
	}
	if dto.BatchSize > maxBatchSize {
		dto.BatchSize = maxBatchSize
	}
	if dto.Offset < 0 {
		dto.Offset = 0
	}

	ids, err := h.documents.ListPublishedIDs(dto.Offset, dto.BatchSize)
	if err != nil {
		h.logger.Error("published id listing failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	res := batch.Result{}
	if len(ids) > 0 {
		res = h.pipeline.BulkGenerate(c.Request.Context(), ids, dto.Force)
	}

	response.OK(c, bulkResult{
		Processed:  res.Processed(),
		Errors:     res.Failed,
		Skipped:    res.Skipped,
		Completed:  len(ids) < dto.BatchSize,
		NextOffset: dto.Offset + len(ids),
	})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("stats query failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) runtimeMetrics(c *gin.Context) {
	response.OK(c, h.metrics.Snapshot())
}

func (h *Handler) deleteSummary(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("summary delete failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.NoContent(c)
}

func (h *Handler) clearCache(c *gin.Context) {
	deleted, err := h.store.ClearCache(c.Request.Context())
	if err != nil {
		h.logger.Error("cache clear failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"deleted": deleted})
}
