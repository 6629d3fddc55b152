package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"question_bank_backend/internal/config"
	"question_bank_backend/internal/controller"
	"question_bank_backend/internal/repository"
	"question_bank_backend/internal/service"
	"question_bank_backend/pkg/configwatcher"
	"question_bank_backend/pkg/database"
	"question_bank_backend/pkg/logger"
	"question_bank_backend/pkg/monitoring"
	"question_bank_backend/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 显式构造的服务上下文，持有数据库、缓存和各层对象
type App struct {
	Config     *config.Config
	ConfigFile string
	Router     *gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client

	services        *services
	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	question            *repository.QuestionRepository
	classificationCache *repository.ClassificationCache
}

type services struct {
	classifier  *service.ClassifierService
	tagging     *service.TaggingService
	question    *service.QuestionService
	autoTagging *service.AutoTaggingService
}

type controllers struct {
	question *controller.QuestionController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	repos := &repositories{
		question: repository.NewQuestionRepository(db),
	}
	if rdb != nil {
		repos.classificationCache = repository.NewClassificationCache(rdb, cfg.Redis.CacheTTL)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	// 未启用 Redis 时传入 nil 接口，而不是 nil 指针
	var cache service.ClassificationCache
	if repos.classificationCache != nil {
		cache = repos.classificationCache
	}

	s.classifier = service.NewClassifierService(cfg.Classifier, cache)
	s.tagging = service.NewTaggingService(cfg.Tagging)
	s.question = service.NewQuestionService(repos.question, s.classifier, s.tagging)
	s.autoTagging = service.NewAutoTaggingService(s.question, cfg.Tagging.BatchSize)

	a.RegisterConfigCallback(func(c *config.Config) {
		s.classifier.Reload(c.Classifier)
		s.tagging.Reload(c.Tagging)
		logger.SetLevel(c)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		question: controller.NewQuestionController(s.question),
		health:   controller.NewHealthController(db, rdb),
	}
}

// startBackgroundTasks 定时自动打标签和配置热更新
func (a *App) startBackgroundTasks(ctx context.Context, s *services) {
	if interval := a.Config.Tagging.AutoInterval; interval > 0 {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if _, err := s.autoTagging.RunAutoTagging(ctx); err != nil {
						logger.Log.Error("auto tagging error", zap.Error(err))
					}
				}
			}
		}()
	}

	if a.ConfigFile != "" {
		if _, err := os.Stat(a.ConfigFile); err == nil {
			go func() {
				if err := configwatcher.WatchConfig(ctx, a.ConfigFile, a.applyConfig); err != nil {
					logger.Log.Error("Config watcher stopped", zap.Error(err))
				}
			}()
		}
	}
}

func NewApp(cfg *config.Config, configFile string) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:     cfg,
		ConfigFile: configFile,
		DB:         db,
		Redis:      rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db, rdb, cfg)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services, db, rdb)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app
}

func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.startBackgroundTasks(ctx, a.services)

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
}

// Close 释放数据库、缓存和追踪资源
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Log.Sync()
}
