package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/biulino/ai-summary-plugin/internal/config"
	"github.com/biulino/ai-summary-plugin/internal/database"
	"github.com/biulino/ai-summary-plugin/internal/middleware"
	"github.com/biulino/ai-summary-plugin/internal/modules/documents"
	"github.com/biulino/ai-summary-plugin/internal/modules/processing/prepare"
	"github.com/biulino/ai-summary-plugin/internal/modules/processing/summarize"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	pkgcron "github.com/biulino/ai-summary-plugin/internal/pkg/cron"
	"github.com/biulino/ai-summary-plugin/internal/pkg/jwt"
	"github.com/biulino/ai-summary-plugin/internal/pkg/metrics"
	pkgredis "github.com/biulino/ai-summary-plugin/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies, constructed explicitly at startup.
// There is no ambient global state; every component receives its
// collaborators here.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → services → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	// Services.
	signer := jwt.NewSigner(cfg.JWTSecret)
	recorder := metrics.NewRecorder()
	settingsSvc := settings.NewService(db)
	documentSvc := documents.NewService(db)
	store := summarize.NewStore(db, rc, recorder, logger.Named("store"))
	pipeline := summarize.NewPipeline(documentSvc, prepare.New(), store, settingsSvc, recorder, logger.Named("pipeline"))

	ctx, cancel := context.WithCancel(context.Background())

	sched := pkgcron.New()
	registerCronJobs(sched, store, settingsSvc, logger.Named("cron"))
	go sched.Start(ctx)

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cancel: cancel, sched: sched}
	app.registerRoutes(rc, signer, settingsSvc, documentSvc, store, pipeline, recorder)

	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		corsCfg.AllowOriginFunc = originMatcher(cfg.AllowedOrigins)
	} else {
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	}
	return corsCfg
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
