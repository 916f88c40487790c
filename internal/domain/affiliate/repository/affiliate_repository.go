package repository

import (
	"context"
	"errors"

	"affiliate_coupons/internal/domain/affiliate/model"

	"gorm.io/gorm"
)

// AffiliateRepository 推广员数据访问接口
type AffiliateRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Affiliate, error)
	Exists(ctx context.Context, id uint64) (bool, error)
}

type affiliateRepository struct {
	db *gorm.DB
}

// NewAffiliateRepository 创建推广员仓储实例
func NewAffiliateRepository(db *gorm.DB) AffiliateRepository {
	return &affiliateRepository{db: db}
}

// GetByID 根据ID获取推广员，不存在时返回 (nil, nil)
func (r *affiliateRepository) GetByID(ctx context.Context, id uint64) (*model.Affiliate, error) {
	var affiliate model.Affiliate
	err := r.db.WithContext(ctx).First(&affiliate, "affiliate_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &affiliate, nil
}

// Exists 检查推广员是否存在，避免加载整行
func (r *affiliateRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var probe int
	err := r.db.WithContext(ctx).
		Raw("SELECT 1 FROM affiliates WHERE affiliate_id = ? LIMIT 1", id).
		Scan(&probe).Error
	if err != nil {
		return false, err
	}
	return probe == 1, nil
}
