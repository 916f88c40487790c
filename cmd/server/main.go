package main

import (
	"log"
	"time"

	_ "affiliate_coupons/docs"
	_ "affiliate_coupons/internal/domain/coupon"
	_ "affiliate_coupons/internal/domain/integration"
	"affiliate_coupons/internal/pkg/config"
	"affiliate_coupons/internal/pkg/hooks"
	"affiliate_coupons/internal/pkg/middleware"
	"affiliate_coupons/internal/pkg/registry"
	"affiliate_coupons/internal/pkg/worker"
	"affiliate_coupons/pkg/cache"
	"affiliate_coupons/pkg/database"
	"affiliate_coupons/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Affiliate Coupons API
// @version 1.0
// @description 推广优惠券服务：带版本化查询缓存的优惠券查询、写入校验与集成模板解析
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	config.LoadConfig()

	// 2. 初始化日志
	logger.Init(config.GlobalConfig.Server.Mode)
	defer logger.Log.Sync()

	// 3. 初始化数据库和 Redis
	db := database.InitDatabase()
	rdb := database.InitRedis()

	// 4. 连接池监控
	poolMonitor := database.NewPoolMonitor(db, time.Second*30)
	defer poolMonitor.Close()

	// 5. 缓存、扩展点与异步通知
	cacheService := cache.NewRedisCache(rdb)
	hookRegistry := hooks.NewRegistry()

	notifyCfg := config.GlobalConfig.Notify
	notifier := worker.NewNotifier(notifyCfg.WebhookURLs, notifyCfg.Workers, notifyCfg.Buffer)
	notifier.Start()

	// 6. 初始化 Gin
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 指标与文档
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 7. 初始化业务模块
	moduleCtx := &registry.ModuleContext{
		DB:       db,
		Redis:    rdb,
		Router:   r,
		Cache:    cacheService,
		Hooks:    hookRegistry,
		Notifier: notifier,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		log.Fatalf("Failed to initialize modules: %v", err)
	}

	// 8. 启动服务
	port := config.GlobalConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
