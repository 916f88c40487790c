package service

import (
	"context"
	"fmt"
	"strings"

	"affiliate_coupons/internal/domain/integration/repository"
	"affiliate_coupons/internal/pkg/hooks"
	"affiliate_coupons/pkg/logger"

	"go.uber.org/zap"
)

// IntegrationEDD 目前唯一原生支持的集成，其他集成通过过滤钩子扩展
const IntegrationEDD = "edd"

// IntegrationService 集成模板解析接口
type IntegrationService interface {
	// TemplateID 返回集成的优惠券模板ID，未找到或集成不识别时返回 0
	TemplateID(ctx context.Context, integration string) (uint64, error)

	// EditURL 返回模板在集成后台的编辑链接，集成不识别时返回空串。
	// integrationCouponID 参数保留在签名里但不参与解析：链接始终
	// 基于重新解析出的模板ID构建。这与既有行为保持一致，调整前
	// 需要产品侧确认。
	EditURL(ctx context.Context, integrationCouponID uint64, integration string) (string, error)
}

type integrationService struct {
	discounts repository.DiscountRepository
	hooks     *hooks.Registry
	adminURL  string
}

// NewIntegrationService 创建集成服务
// adminURL 为集成后台的基础地址，如 https://store.example.com/wp-admin
func NewIntegrationService(discounts repository.DiscountRepository, hookRegistry *hooks.Registry, adminURL string) IntegrationService {
	return &integrationService{
		discounts: discounts,
		hooks:     hookRegistry,
		adminURL:  strings.TrimRight(adminURL, "/"),
	}
}

func (s *integrationService) TemplateID(ctx context.Context, integration string) (uint64, error) {
	var templateID uint64

	switch integration {
	case IntegrationEDD:
		id, err := s.discounts.TemplateID(ctx)
		if err != nil {
			return 0, err
		}
		templateID = id
	default:
		logger.L().Warn("template lookup for unrecognized integration",
			zap.String("integration", integration))
	}

	// 过滤钩子允许外部接管其他集成的模板解析
	if filtered, ok := s.hooks.ApplyFilters(hooks.FilterTemplateID, templateID, integration).(uint64); ok {
		templateID = filtered
	}
	return templateID, nil
}

func (s *integrationService) EditURL(ctx context.Context, integrationCouponID uint64, integration string) (string, error) {
	var url string

	if integration == IntegrationEDD {
		templateID, err := s.TemplateID(ctx, integration)
		if err != nil {
			return "", err
		}
		url = fmt.Sprintf("%s/edit.php?post_type=download&page=edd-discounts&edd-action=edit_discount&discount=%d",
			s.adminURL, templateID)
	}

	if filtered, ok := s.hooks.ApplyFilters(hooks.FilterEditURL, url, integration).(string); ok {
		url = filtered
	}
	return url, nil
}
