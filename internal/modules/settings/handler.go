package settings

import (
	"io"

	"github.com/biulino/ai-summary-plugin/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the admin configuration surface.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger.Named("settings")}
}

// RegisterRoutes mounts settings routes onto an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.get)
	rg.PATCH("/settings", h.patch)
}

func (h *Handler) get(c *gin.Context) {
	cfg, err := h.svc.Get()
	if err != nil {
		h.logger.Error("load settings", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, masked(cfg))
}

func (h *Handler) patch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "unreadable body")
		return
	}

	cfg, err := h.svc.Patch(body)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, masked(cfg))
}

// masked hides all but the key's tail so the admin UI can show which key is set.
func masked(cfg Settings) Settings {
	key := cfg.AI.APIKey
	if n := len(key); n > 4 {
		cfg.AI.APIKey = "****" + key[n-4:]
	}
	return cfg
}
