package repository

import (
	"context"
	"errors"

	"affiliate_coupons/internal/domain/referral/model"

	"gorm.io/gorm"
)

// ReferralRepository 推荐记录数据访问接口
type ReferralRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Referral, error)
	ListByIDs(ctx context.Context, ids []uint64) ([]model.Referral, error)
}

type referralRepository struct {
	db *gorm.DB
}

// NewReferralRepository 创建推荐记录仓储实例
func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{db: db}
}

// GetByID 根据ID获取推荐记录，不存在时返回 (nil, nil)
func (r *referralRepository) GetByID(ctx context.Context, id uint64) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.WithContext(ctx).First(&referral, "referral_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

// ListByIDs 批量获取推荐记录，缺失的ID直接跳过
func (r *referralRepository) ListByIDs(ctx context.Context, ids []uint64) ([]model.Referral, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var referrals []model.Referral
	err := r.db.WithContext(ctx).
		Where("referral_id IN ?", ids).
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}
