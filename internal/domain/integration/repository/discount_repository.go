package repository

import (
	"context"

	"affiliate_coupons/internal/domain/integration/model"

	"gorm.io/gorm"
)

// DiscountRepository EDD折扣数据访问接口
type DiscountRepository interface {
	// TemplateID 查找标记为优惠券模板的折扣ID，没有则返回 0
	TemplateID(ctx context.Context) (uint64, error)
}

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建折扣仓储实例
func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) TemplateID(ctx context.Context) (uint64, error) {
	var ids []uint64
	// 取标记值最大的那条作为模板
	err := r.db.WithContext(ctx).
		Model(&model.Discount{}).
		Where("is_coupon_template > 0").
		Order("is_coupon_template DESC").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}
