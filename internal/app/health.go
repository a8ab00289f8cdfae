package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	pkgredis "github.com/biulino/ai-summary-plugin/internal/pkg/redis"
)

const healthCheckTimeout = 2 * time.Second

type healthReport struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Warnings []string          `json:"warnings,omitempty"`
}

// healthHandler probes the dependencies the service cannot run without.
// Database or Redis being down degrades the report to 503; a missing
// provider API key only surfaces as a warning, since the read surface
// still works.
func (a *App) healthHandler(rc *pkgredis.Client, settingsSvc *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		report := healthReport{Status: "ok", Checks: map[string]string{}}

		report.Checks["database"] = "ok"
		if sqlDB, err := a.db.DB(); err != nil {
			report.Checks["database"] = err.Error()
			report.Status = "degraded"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			report.Checks["database"] = err.Error()
			report.Status = "degraded"
		}

		report.Checks["redis"] = "ok"
		if err := rc.Raw().Ping(ctx).Err(); err != nil {
			report.Checks["redis"] = err.Error()
			report.Status = "degraded"
		}

		if cfg, err := settingsSvc.Get(); err != nil {
			report.Warnings = append(report.Warnings, "settings unavailable: "+err.Error())
		} else if cfg.AI.APIKey == "" {
			report.Warnings = append(report.Warnings, "no provider api key configured")
		}

		code := http.StatusOK
		if report.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, report)
	}
}
