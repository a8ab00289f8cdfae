package publication

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	"github.com/biulino/ai-summary-plugin/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type documentSource interface {
	GetByID(id string) (*models.DocumentModel, error)
	GetBySlug(slug string) (*models.DocumentModel, error)
}

type summarySource interface {
	Get(ctx context.Context, documentID string) (*models.SummaryModel, error)
}

type settingsSource interface {
	Get() (settings.Settings, error)
}

// Handler serves the read-only publication surface: REST lookups, the
// rewrite-style JSON-LD page, the HTML fragment and robots.txt.
type Handler struct {
	documents documentSource
	summaries summarySource
	settings  settingsSource
	logger    *zap.Logger
}

func NewHandler(documents documentSource, summaries summarySource, source settingsSource, logger *zap.Logger) *Handler {
	return &Handler{documents: documents, summaries: summaries, settings: source, logger: logger}
}

// Register mounts the public routes.
func (h *Handler) Register(r *gin.Engine, api *gin.RouterGroup) {
	api.GET("/summary/:slug", h.GetBySlug)
	api.GET("/summary/:slug/fragment", h.GetFragment)
	api.GET("/summary/id/:id", h.GetByID)

	r.GET("/:slug/ai-summary", h.GetPage)
	r.GET("/robots.txt", h.GetRobots)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	data, ok := h.resolve(c, h.lookupBySlug(c.Param("slug")))
	if !ok {
		return
	}
	response.OK(c, data)
}

func (h *Handler) GetByID(c *gin.Context) {
	data, ok := h.resolve(c, h.lookupByID(c.Param("id")))
	if !ok {
		return
	}
	response.OK(c, data)
}

// GetPage is the rewrite-based endpoint: same payload as the REST lookup,
// served as a standalone ld+json document with crawler and cache headers.
func (h *Handler) GetPage(c *gin.Context) {
	data, ok := h.resolve(c, h.lookupBySlug(c.Param("slug")))
	if !ok {
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("structured data marshal failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("X-Robots-Tag", "noindex, follow")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Data(http.StatusOK, "application/ld+json; charset=utf-8", body)
}

// GetRobots emits crawler rules for the summary pages when the allow toggle
// is on. AI crawlers get explicit Allow lines for the rewrite path.
func (h *Handler) GetRobots(c *gin.Context) {
	cfg, err := h.settings.Get()
	if err != nil {
		h.logger.Error("settings unavailable", zap.Error(err))
		response.InternalError(c)
		return
	}

	body := "User-agent: *\nDisallow:\n"
	if cfg.AI.RobotsAllow {
		for _, agent := range []string{"GPTBot", "ClaudeBot", "Google-Extended", "PerplexityBot"} {
			body += "\nUser-agent: " + agent + "\nAllow: /*/ai-summary\n"
		}
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

type lookup func() (*models.DocumentModel, error)

func (h *Handler) lookupBySlug(slug string) lookup {
	return func() (*models.DocumentModel, error) { return h.documents.GetBySlug(slug) }
}

func (h *Handler) lookupByID(id string) lookup {
	return func() (*models.DocumentModel, error) { return h.documents.GetByID(id) }
}

// resolve runs the full read path: document, summary, settings, build,
// validate. A false return means the response is already written.
func (h *Handler) resolve(c *gin.Context, find lookup) (JSONLD, bool) {
	doc, err := find()
	if err != nil {
		h.logger.Error("document lookup failed", zap.Error(err))
		response.InternalError(c)
		return nil, false
	}
	if doc == nil || !doc.IsPublished {
		response.NotFound(c, "Not found", "No summary is available for this document.")
		return nil, false
	}

	summary, err := h.summaries.Get(c.Request.Context(), doc.ID)
	if err != nil {
		h.logger.Error("summary lookup failed", zap.Error(err))
		response.InternalError(c)
		return nil, false
	}
	if summary == nil || !summary.HasSummary() {
		response.NotFound(c, "Not found", "No summary is available for this document.")
		return nil, false
	}

	cfg, err := h.settings.Get()
	if err != nil {
		h.logger.Error("settings unavailable", zap.Error(err))
		response.InternalError(c)
		return nil, false
	}

	data := Build(doc, summary, cfg.Site)
	if err := Validate(data); err != nil {
		h.logger.Error("structured data rejected", zap.String("slug", doc.Slug), zap.Error(err))
		response.InternalError(c)
		return nil, false
	}
	return data, true
}
