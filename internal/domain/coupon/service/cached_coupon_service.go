package service

import (
	"context"

	"affiliate_coupons/internal/domain/coupon/model"
	"affiliate_coupons/pkg/cache"
	"affiliate_coupons/pkg/logger"
	"affiliate_coupons/pkg/metrics"

	"go.uber.org/zap"
)

// CacheNamespace 优惠券查询缓存的命名空间
const CacheNamespace = "coupons"

// 缓存指纹的查询模式标记：同一组条件的列表、ID列表和计数结果互不混用
const (
	modeList  = "list"
	modeIDs   = "ids"
	modeCount = "count"
)

// fingerprintArgs 参与指纹计算的内容：归一化后的条件加查询模式
type fingerprintArgs struct {
	Mode string          `json:"mode"`
	Args model.QueryArgs `json:"args"`
}

// CachedCouponService 带查询缓存的优惠券服务
//
// 查询结果按（归一化条件指纹 + 当前版本号）缓存；任何写操作
// Bump 版本号，旧版本下的全部缓存条目随之失效。失效是 O(1)
// 的：不枚举、不逐条删除，旧条目靠 TTL 过期。
type CachedCouponService struct {
	base  CouponService
	cache *cache.VersionedCache
}

// NewCachedCouponService 创建带缓存的优惠券服务
func NewCachedCouponService(base CouponService, versioned *cache.VersionedCache) CouponService {
	return &CachedCouponService{
		base:  base,
		cache: versioned,
	}
}

// Add 创建优惠券并使查询缓存失效
func (s *CachedCouponService) Add(ctx context.Context, args AddCouponArgs) (uint64, error) {
	id, err := s.base.Add(ctx, args)
	if err != nil {
		return 0, err
	}
	s.bump(ctx)
	return id, nil
}

// Get 透传，单行读取不走查询缓存
func (s *CachedCouponService) Get(ctx context.Context, id uint64) (*model.Coupon, error) {
	return s.base.Get(ctx, id)
}

// List 按条件查询优惠券（带缓存）
func (s *CachedCouponService) List(ctx context.Context, args model.QueryArgs) ([]model.Coupon, error) {
	normalized := args.Normalized()
	fp := cache.Fingerprint(fingerprintArgs{Mode: modeList, Args: normalized})

	var cached []model.Coupon
	if err := s.cache.Get(ctx, CacheNamespace, fp, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheHit(CacheNamespace)
		return cached, nil
	}
	metrics.GetGlobalCollector().RecordCacheMiss(CacheNamespace)

	coupons, err := s.base.List(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Add(ctx, CacheNamespace, fp, coupons); err != nil {
		logger.L().Warn("failed to cache coupon list", zap.Error(err))
	}
	return coupons, nil
}

// ListIDs 按条件只查询优惠券ID（带缓存）
func (s *CachedCouponService) ListIDs(ctx context.Context, args model.QueryArgs) ([]uint64, error) {
	normalized := args.Normalized()
	fp := cache.Fingerprint(fingerprintArgs{Mode: modeIDs, Args: normalized})

	var cached []uint64
	if err := s.cache.Get(ctx, CacheNamespace, fp, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheHit(CacheNamespace)
		return cached, nil
	}
	metrics.GetGlobalCollector().RecordCacheMiss(CacheNamespace)

	ids, err := s.base.ListIDs(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Add(ctx, CacheNamespace, fp, ids); err != nil {
		logger.L().Warn("failed to cache coupon ids", zap.Error(err))
	}
	return ids, nil
}

// Count 按条件统计总数（带缓存）
func (s *CachedCouponService) Count(ctx context.Context, args model.QueryArgs) (int64, error) {
	normalized := args.Normalized()
	fp := cache.Fingerprint(fingerprintArgs{Mode: modeCount, Args: normalized})

	var cached int64
	if err := s.cache.Get(ctx, CacheNamespace, fp, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheHit(CacheNamespace)
		return cached, nil
	}
	metrics.GetGlobalCollector().RecordCacheMiss(CacheNamespace)

	total, err := s.base.Count(ctx, normalized)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Add(ctx, CacheNamespace, fp, total); err != nil {
		logger.L().Warn("failed to cache coupon count", zap.Error(err))
	}
	return total, nil
}

// Exists 透传，存在性探测本身就是轻量查询
func (s *CachedCouponService) Exists(ctx context.Context, id uint64) (bool, error) {
	return s.base.Exists(ctx, id)
}

// GetReferralIDs 透传
func (s *CachedCouponService) GetReferralIDs(ctx context.Context, couponID uint64) ([]uint64, error) {
	return s.base.GetReferralIDs(ctx, couponID)
}

// Update 更新优惠券并使查询缓存失效
func (s *CachedCouponService) Update(ctx context.Context, coupon *model.Coupon) error {
	if err := s.base.Update(ctx, coupon); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// Delete 删除优惠券并使查询缓存失效
func (s *CachedCouponService) Delete(ctx context.Context, id uint64) error {
	if err := s.base.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func (s *CachedCouponService) bump(ctx context.Context) {
	if err := s.cache.Bump(ctx, CacheNamespace); err != nil {
		logger.L().Warn("failed to bump coupon cache generation", zap.Error(err))
	}
}
