package coupon

import (
	"time"

	affiliaterepo "affiliate_coupons/internal/domain/affiliate/repository"
	"affiliate_coupons/internal/domain/coupon/handler"
	"affiliate_coupons/internal/domain/coupon/repository"
	"affiliate_coupons/internal/domain/coupon/service"
	referralrepo "affiliate_coupons/internal/domain/referral/repository"
	"affiliate_coupons/internal/pkg/config"
	"affiliate_coupons/internal/pkg/hooks"
	"affiliate_coupons/internal/pkg/middleware"
	"affiliate_coupons/internal/pkg/registry"
	"affiliate_coupons/internal/pkg/worker"
	"affiliate_coupons/pkg/cache"

	"github.com/gin-gonic/gin"
)

// CouponModule 优惠券模块
type CouponModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&CouponModule{})
}

func (m *CouponModule) Name() string {
	return "coupon"
}

func (m *CouponModule) Priority() int {
	return 1
}

func (m *CouponModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	couponRepo := repository.NewCouponRepository(ctx.DB)
	affiliateRepo := affiliaterepo.NewAffiliateRepository(ctx.DB)
	referralRepo := referralrepo.NewReferralRepository(ctx.DB)
	validator := service.NewReferralValidator(referralRepo)

	base := service.NewCouponService(couponRepo, affiliateRepo, validator, ctx.Hooks)

	ttl := time.Duration(config.GlobalConfig.Cache.QueryTTLMinutes) * time.Minute
	versioned := cache.NewVersionedCache(ctx.Cache, ttl)
	couponService := service.NewCachedCouponService(base, versioned)

	couponHandler := handler.NewCouponHandler(couponService, validator)

	// 2. 创建事件的默认监听：异步投递 webhook 通知
	if ctx.Notifier != nil {
		notifier := ctx.Notifier
		ctx.Hooks.AddAction(hooks.ActionCouponCreated, func(args ...interface{}) {
			if id, ok := args[0].(uint64); ok {
				notifier.Enqueue(worker.Notification{Event: hooks.ActionCouponCreated, CouponID: id})
			}
		})
	}

	// 3. 路由注册
	setupRoutes(ctx.Router, couponHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CouponHandler) {
	couponGroup := r.Group("/coupons")
	couponGroup.Use(middleware.AuthMiddleware())
	{
		couponGroup.GET("", h.ListCoupons)
		couponGroup.GET("/count", h.CountCoupons)
		couponGroup.GET("/:id", h.GetCoupon)
		couponGroup.GET("/:id/referrals", h.GetReferralIDs)
		couponGroup.GET("/:id/exists", h.CouponExists)
	}

	// 写操作仅限管理员
	adminGroup := r.Group("/coupons")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.POST("", h.CreateCoupon)
		adminGroup.PUT("/:id", h.UpdateCoupon)
		adminGroup.DELETE("/:id", h.DeleteCoupon)
	}

	referralGroup := r.Group("/referrals")
	referralGroup.Use(middleware.AuthMiddleware())
	{
		referralGroup.GET("/group", h.GroupReferrals)
	}
}
