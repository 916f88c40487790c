package service

import (
	"context"

	"affiliate_coupons/internal/domain/coupon/model"
	referralmodel "affiliate_coupons/internal/domain/referral/model"
	referralrepo "affiliate_coupons/internal/domain/referral/repository"
)

// DefaultGroupStatus 按推广员分组时默认只保留已结算的推荐记录
const DefaultGroupStatus = referralmodel.StatusPaid

// ReferralValidator 推荐记录交叉校验
type ReferralValidator interface {
	// Resolve 过滤出存在且归属于指定推广员的推荐记录ID。
	// 不存在或归属其他推广员的ID静默丢弃，不算错误；
	// 结果是否为空由调用方决定如何处理。
	Resolve(ctx context.Context, affiliateID uint64, referralIDs []uint64) ([]uint64, error)

	// GroupByAffiliate 把推荐记录ID按归属的推广员分组。
	// statusFilter 非空时只保留该状态的记录，传空串关闭状态过滤。
	GroupByAffiliate(ctx context.Context, referralIDs []uint64, statusFilter string) (map[uint64][]uint64, error)
}

type referralValidator struct {
	referrals referralrepo.ReferralRepository
}

// NewReferralValidator 创建推荐记录校验器
func NewReferralValidator(referrals referralrepo.ReferralRepository) ReferralValidator {
	return &referralValidator{referrals: referrals}
}

func (v *referralValidator) Resolve(ctx context.Context, affiliateID uint64, referralIDs []uint64) ([]uint64, error) {
	valid := make([]uint64, 0, len(referralIDs))
	for _, id := range model.UniqueIDs(referralIDs) {
		referral, err := v.referrals.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if referral == nil || referral.AffiliateID != affiliateID {
			continue
		}
		valid = append(valid, id)
	}
	return valid, nil
}

func (v *referralValidator) GroupByAffiliate(ctx context.Context, referralIDs []uint64, statusFilter string) (map[uint64][]uint64, error) {
	grouped := make(map[uint64][]uint64)
	for _, id := range model.UniqueIDs(referralIDs) {
		referral, err := v.referrals.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if referral == nil {
			continue
		}
		if statusFilter != "" && referral.Status != statusFilter {
			continue
		}
		grouped[referral.AffiliateID] = append(grouped[referral.AffiliateID], id)
	}
	return grouped, nil
}
