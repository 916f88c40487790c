package service

import (
	"context"
	"errors"
	"time"

	affiliaterepo "affiliate_coupons/internal/domain/affiliate/repository"
	"affiliate_coupons/internal/domain/coupon/model"
	"affiliate_coupons/internal/domain/coupon/repository"
	"affiliate_coupons/internal/pkg/hooks"
)

// 业务错误
var (
	// ErrAffiliateNotFound 目标推广员不存在，写入中止
	ErrAffiliateNotFound = errors.New("affiliate does not exist")
	// ErrNoValidReferrals 所有推荐记录都未通过归属校验，写入中止
	ErrNoValidReferrals = errors.New("no valid referrals for affiliate")
)

// AddCouponArgs 创建优惠券的入参
type AddCouponArgs struct {
	AffiliateID         uint64       `json:"affiliateId"`
	IntegrationCouponID uint64       `json:"integrationCouponId"`
	Code                string       `json:"code"`
	ReferralIDs         model.IDList `json:"referrals"`
	Integration         string       `json:"integration"`
	Owner               uint64       `json:"owner"`
	Status              string       `json:"status"`
	ExpirationDate      time.Time    `json:"expirationDate"`
}

// CouponService 优惠券业务接口
type CouponService interface {
	Add(ctx context.Context, args AddCouponArgs) (uint64, error)
	Get(ctx context.Context, id uint64) (*model.Coupon, error)
	List(ctx context.Context, args model.QueryArgs) ([]model.Coupon, error)
	ListIDs(ctx context.Context, args model.QueryArgs) ([]uint64, error)
	Count(ctx context.Context, args model.QueryArgs) (int64, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	GetReferralIDs(ctx context.Context, couponID uint64) ([]uint64, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id uint64) error
}

type couponService struct {
	repo       repository.CouponRepository
	affiliates affiliaterepo.AffiliateRepository
	validator  ReferralValidator
	hooks      *hooks.Registry
}

// NewCouponService 创建优惠券服务
func NewCouponService(
	repo repository.CouponRepository,
	affiliates affiliaterepo.AffiliateRepository,
	validator ReferralValidator,
	hookRegistry *hooks.Registry,
) CouponService {
	return &couponService{
		repo:       repo,
		affiliates: affiliates,
		validator:  validator,
		hooks:      hookRegistry,
	}
}

// Add 创建优惠券
// 校验顺序：先确认推广员存在（失败时不触碰推荐记录存储），
// 再做推荐记录归属过滤；全部被过滤掉则什么都不落库。
func (s *couponService) Add(ctx context.Context, args AddCouponArgs) (uint64, error) {
	exists, err := s.affiliates.Exists(ctx, args.AffiliateID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrAffiliateNotFound
	}

	// 写入侧的状态只做键归一，不收敛到枚举值（查询侧才收敛）
	status := model.StatusActive
	if args.Status != "" {
		status = model.SanitizeKey(args.Status)
	}
	code := model.SanitizeKey(args.Code)

	valid, err := s.validator.Resolve(ctx, args.AffiliateID, args.ReferralIDs)
	if err != nil {
		return 0, err
	}
	if len(valid) == 0 {
		return 0, ErrNoValidReferrals
	}

	expiration := args.ExpirationDate
	if expiration.IsZero() {
		expiration = time.Now()
	}

	coupon := &model.Coupon{
		IntegrationCouponID: args.IntegrationCouponID,
		AffiliateID:         args.AffiliateID,
		Referrals:           model.JoinIDs(valid),
		Integration:         args.Integration,
		Owner:               args.Owner,
		Status:              status,
		Code:                code,
		ExpirationDate:      expiration,
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return 0, err
	}

	s.hooks.DoAction(hooks.ActionCouponCreated, coupon.ID)

	return coupon.ID, nil
}

// Get 根据ID获取优惠券，不存在时返回 (nil, nil)
func (s *couponService) Get(ctx context.Context, id uint64) (*model.Coupon, error) {
	return s.repo.GetByID(ctx, id)
}

// List 按条件查询优惠券
func (s *couponService) List(ctx context.Context, args model.QueryArgs) ([]model.Coupon, error) {
	return s.repo.List(ctx, args)
}

// ListIDs 按条件只查询优惠券ID
func (s *couponService) ListIDs(ctx context.Context, args model.QueryArgs) ([]uint64, error) {
	return s.repo.ListIDs(ctx, args)
}

// Count 按条件统计总数
func (s *couponService) Count(ctx context.Context, args model.QueryArgs) (int64, error) {
	return s.repo.Count(ctx, args)
}

// Exists 检查优惠券是否存在
func (s *couponService) Exists(ctx context.Context, id uint64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// GetReferralIDs 获取优惠券关联的推荐记录ID，优惠券不存在时返回空
func (s *couponService) GetReferralIDs(ctx context.Context, couponID uint64) ([]uint64, error) {
	coupon, err := s.repo.GetByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, nil
	}
	return coupon.ReferralIDs(), nil
}

// Update 更新优惠券
func (s *couponService) Update(ctx context.Context, coupon *model.Coupon) error {
	return s.repo.Update(ctx, coupon)
}

// Delete 删除优惠券
func (s *couponService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}
