package app

import (
	"question_bank_backend/docs"
	"question_bank_backend/internal/config"
	"question_bank_backend/internal/middleware"
	"question_bank_backend/internal/util"
	"question_bank_backend/pkg/monitoring"
	"question_bank_backend/pkg/security"
	"question_bank_backend/pkg/tracing"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
		util.TooManyRequests,
	))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		api.POST("/submit_question", c.question.SubmitQuestion)
		api.POST("/classify_question", c.question.ClassifyQuestion)
		api.POST("/tag_question", c.question.TagQuestion)
		api.POST("/auto_tag_question", c.question.AutoTagQuestion)
		api.GET("/get_question", c.question.GetQuestion)
	}
}
