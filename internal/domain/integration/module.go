package integration

import (
	"affiliate_coupons/internal/domain/integration/handler"
	"affiliate_coupons/internal/domain/integration/repository"
	"affiliate_coupons/internal/domain/integration/service"
	"affiliate_coupons/internal/pkg/config"
	"affiliate_coupons/internal/pkg/middleware"
	"affiliate_coupons/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// IntegrationModule 集成模块
type IntegrationModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&IntegrationModule{})
}

func (m *IntegrationModule) Name() string {
	return "integration"
}

func (m *IntegrationModule) Priority() int {
	return 2
}

func (m *IntegrationModule) Init(ctx *registry.ModuleContext) error {
	discountRepo := repository.NewDiscountRepository(ctx.DB)
	integrationService := service.NewIntegrationService(
		discountRepo,
		ctx.Hooks,
		config.GlobalConfig.Integrations.EDD.AdminURL,
	)
	integrationHandler := handler.NewIntegrationHandler(integrationService)

	setupRoutes(ctx.Router, integrationHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.IntegrationHandler) {
	group := r.Group("/integrations")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/:integration/coupon-template", h.GetCouponTemplate)
		group.GET("/:integration/coupon-edit-url", h.GetCouponEditURL)
	}
}
