package app

import (
	"context"

	"github.com/biulino/ai-summary-plugin/internal/middleware"
	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/modules/admin"
	"github.com/biulino/ai-summary-plugin/internal/modules/documents"
	"github.com/biulino/ai-summary-plugin/internal/modules/processing/summarize"
	"github.com/biulino/ai-summary-plugin/internal/modules/publication"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	"github.com/biulino/ai-summary-plugin/internal/pkg/jwt"
	"github.com/biulino/ai-summary-plugin/internal/pkg/metrics"
	pkgredis "github.com/biulino/ai-summary-plugin/internal/pkg/redis"
)

func (a *App) registerRoutes(
	rc *pkgredis.Client,
	signer *jwt.Signer,
	settingsSvc *settings.Service,
	documentSvc *documents.Service,
	store *summarize.Store,
	pipeline *summarize.Pipeline,
	recorder *metrics.Recorder,
) {
	r := a.router
	api := r.Group("/api/v1")

	r.GET("/health", a.healthHandler(rc, settingsSvc))

	// Public read surface.
	pubHandler := publication.NewHandler(documentSvc, store, settingsSvc, a.logger.Named("publication"))
	pubHandler.Register(r, api)

	// Admin surface behind JWT.
	adminHandler := admin.NewHandler(pipeline, documentSvc, store, signer, a.cfg.AdminKey, recorder, a.logger)
	adminGroup := api.Group("/admin")
	adminHandler.RegisterLogin(adminGroup)

	authed := adminGroup.Group("", middleware.Auth(signer))
	adminHandler.RegisterRoutes(authed, middleware.GenerationRateLimit(rc.Raw()))
	settings.NewHandler(settingsSvc, a.logger).RegisterRoutes(authed)

	// Saving a published document triggers generation when auto-generate is
	// on. Runs inline on the request; generation failures only log.
	afterSave := func(doc *models.DocumentModel) {
		pipeline.MaybeGenerateOnSave(context.Background(), doc)
	}
	documents.NewHandler(documentSvc, a.logger, afterSave).RegisterRoutes(authed)
}
