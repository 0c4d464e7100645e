package core

import (
	"net/http"
	"time"

	"github.com/gdshowcase/gd-showcase/api"
	levelhandler "github.com/gdshowcase/gd-showcase/api/handler/levels"
	mediahandler "github.com/gdshowcase/gd-showcase/api/handler/media"
	"github.com/gdshowcase/gd-showcase/api/middleware"
	"github.com/gdshowcase/gd-showcase/config"
	"github.com/gdshowcase/gd-showcase/database/repo/levels"
	"github.com/gdshowcase/gd-showcase/internal/services/auth"
	levelsvc "github.com/gdshowcase/gd-showcase/internal/services/levels"
	"github.com/gdshowcase/gd-showcase/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies 路由装配所需的依赖
type Dependencies struct {
	Repo    *levels.Repository
	Storage storage.Provider
	Gate    *auth.GateService
}

// NewRouter 装配全部路由与中间件
// 返回的 cleanup 停止限流器的后台协程
func NewRouter(deps Dependencies) (*gin.Engine, func()) {
	cfg := config.Get()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	_ = router.SetTrustedProxies(nil)
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	queryService := levelsvc.NewQueryService(deps.Repo)
	submitService := levelsvc.NewSubmitService(deps.Repo, deps.Storage)
	moderationService := levelsvc.NewModerationService(deps.Repo, deps.Storage)

	levelHandler := levelhandler.NewHandler(queryService, submitService, moderationService)
	mediaHandler := mediahandler.NewHandler(deps.Storage)
	authHandler := api.NewAuthHandler(deps.Gate)
	healthHandler := NewHealthHandler(deps.Repo, deps.Storage)

	apiLimiter := middleware.NewIPRateLimiter(
		cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	authLimiter := middleware.NewIPRateLimiter(
		cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)

	router.GET("/health", healthHandler.Check)
	router.GET("/version", versionHandler)

	router.POST("/authenticate", authLimiter.Middleware(), authHandler.Authenticate)

	apiGroup := router.Group("/api", apiLimiter.Middleware())
	{
		apiGroup.GET("/levels", levelHandler.List)
		apiGroup.POST("/levels", levelHandler.Submit)
		apiGroup.GET("/levels/:id", levelHandler.Get)
		apiGroup.POST("/levels/:id/status", middleware.AccessGate(deps.Gate), levelHandler.SetStatus)
		apiGroup.DELETE("/levels/:id", levelHandler.Delete)
		apiGroup.DELETE("/levels/:id/images/*imageId", levelHandler.DeleteImage)
	}

	router.GET("/media/*path", mediaHandler.Serve)

	router.NoRoute(middleware.StaticHandler(cfg.WebRoot, deps.Gate))

	cleanup := func() {
		apiLimiter.StopCleanup()
		authLimiter.StopCleanup()
	}
	return router, cleanup
}

// NewServer 创建带超时配置的 HTTP 服务器
func NewServer(router *gin.Engine) *http.Server {
	cfg := config.Get()
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}
}

// versionHandler 返回构建版本信息
func versionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
		"commit":  config.CommitHash,
	})
}
