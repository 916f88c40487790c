package service

import (
	"context"
	"testing"

	"affiliate_coupons/internal/pkg/hooks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockDiscountRepo 模拟折扣仓储
type mockDiscountRepo struct {
	mock.Mock
}

func (m *mockDiscountRepo) TemplateID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func TestTemplateIDForEDD(t *testing.T) {
	repo := new(mockDiscountRepo)
	repo.On("TemplateID", mock.Anything).Return(uint64(5), nil)

	svc := NewIntegrationService(repo, hooks.NewRegistry(), "https://store.example.com/wp-admin")
	id, err := svc.TemplateID(context.Background(), IntegrationEDD)

	assert.NoError(t, err)
	assert.Equal(t, uint64(5), id)
}

func TestTemplateIDUnrecognizedIntegration(t *testing.T) {
	repo := new(mockDiscountRepo)

	svc := NewIntegrationService(repo, hooks.NewRegistry(), "https://store.example.com/wp-admin")
	id, err := svc.TemplateID(context.Background(), "woocommerce")

	assert.NoError(t, err)
	assert.Zero(t, id)
	repo.AssertNotCalled(t, "TemplateID", mock.Anything)
}

func TestTemplateIDFilterCanOverride(t *testing.T) {
	repo := new(mockDiscountRepo)
	registry := hooks.NewRegistry()

	// 外部通过过滤钩子为未识别的集成提供模板ID
	registry.AddFilter(hooks.FilterTemplateID, func(value interface{}, args ...interface{}) interface{} {
		if args[0].(string) == "woocommerce" {
			return uint64(99)
		}
		return value
	})

	svc := NewIntegrationService(repo, registry, "https://store.example.com/wp-admin")
	id, err := svc.TemplateID(context.Background(), "woocommerce")

	assert.NoError(t, err)
	assert.Equal(t, uint64(99), id)
}

func TestEditURLIgnoresPassedCouponID(t *testing.T) {
	repo := new(mockDiscountRepo)
	repo.On("TemplateID", mock.Anything).Return(uint64(5), nil)

	svc := NewIntegrationService(repo, hooks.NewRegistry(), "https://store.example.com/wp-admin/")
	url, err := svc.EditURL(context.Background(), 999, IntegrationEDD)

	assert.NoError(t, err)
	// 链接基于重新解析的模板ID，不是传入的ID
	assert.Contains(t, url, "discount=5")
	assert.NotContains(t, url, "999")
	assert.Contains(t, url, "https://store.example.com/wp-admin/edit.php")
}

func TestEditURLUnrecognizedIntegration(t *testing.T) {
	repo := new(mockDiscountRepo)

	svc := NewIntegrationService(repo, hooks.NewRegistry(), "https://store.example.com/wp-admin")
	url, err := svc.EditURL(context.Background(), 5, "woocommerce")

	assert.NoError(t, err)
	assert.Empty(t, url)
}

func TestEditURLFilterCanOverride(t *testing.T) {
	repo := new(mockDiscountRepo)
	registry := hooks.NewRegistry()

	registry.AddFilter(hooks.FilterEditURL, func(value interface{}, args ...interface{}) interface{} {
		return "https://override.example.com/edit"
	})

	svc := NewIntegrationService(repo, registry, "https://store.example.com/wp-admin")
	url, err := svc.EditURL(context.Background(), 5, "woocommerce")

	assert.NoError(t, err)
	assert.Equal(t, "https://override.example.com/edit", url)
}
