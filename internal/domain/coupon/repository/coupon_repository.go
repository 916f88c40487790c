package repository

import (
	"context"
	"errors"
	"fmt"

	"affiliate_coupons/internal/domain/coupon/model"
	"affiliate_coupons/pkg/metrics"

	"gorm.io/gorm"
)

// CouponRepository 优惠券数据访问接口
type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	GetByID(ctx context.Context, id uint64) (*model.Coupon, error)
	List(ctx context.Context, args model.QueryArgs) ([]model.Coupon, error)
	ListIDs(ctx context.Context, args model.QueryArgs) ([]uint64, error)
	Count(ctx context.Context, args model.QueryArgs) (int64, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id uint64) error
}

// couponRepository 实现
type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓储实例
func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

// applyFilters 把查询条件拼装为参数化的 WHERE 子句。
// 所有值都通过占位符绑定，绝不拼接进 SQL 字面量。
func applyFilters(db *gorm.DB, args model.QueryArgs) *gorm.DB {
	if len(args.CouponID) > 0 {
		db = db.Where("id IN ?", []uint64(args.CouponID))
	}
	if len(args.AffiliateID) > 0 {
		db = db.Where("affiliate_id IN ?", []uint64(args.AffiliateID))
	}
	if len(args.Owner) > 0 {
		db = db.Where("owner IN ?", []uint64(args.Owner))
	}
	if args.Integration != "" {
		db = db.Where("integration = ?", args.Integration)
	}
	if args.Status != "" {
		db = db.Where("status = ?", args.Status)
	}
	return db
}

// Create 创建优惠券
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	err := r.db.WithContext(ctx).Create(coupon).Error
	metrics.GetGlobalCollector().RecordDBQuery("insert", "affiliate_coupons", err == nil)
	return err
}

// GetByID 根据ID获取优惠券，不存在时返回 (nil, nil)
func (r *couponRepository) GetByID(ctx context.Context, id uint64) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error
	metrics.GetGlobalCollector().RecordDBQuery("select", "affiliate_coupons", err == nil || errors.Is(err, gorm.ErrRecordNotFound))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// List 按条件查询优惠券列表
func (r *couponRepository) List(ctx context.Context, args model.QueryArgs) ([]model.Coupon, error) {
	args = args.Normalized()

	var coupons []model.Coupon
	// OrderBy 已经通过列白名单归一，拼进排序子句是安全的
	err := applyFilters(r.db.WithContext(ctx).Model(&model.Coupon{}), args).
		Order(fmt.Sprintf("%s %s", args.OrderBy, args.Order)).
		Limit(args.Number).
		Offset(args.Offset).
		Find(&coupons).Error
	metrics.GetGlobalCollector().RecordDBQuery("select", "affiliate_coupons", err == nil)
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

// ListIDs 按条件只查询优惠券ID
func (r *couponRepository) ListIDs(ctx context.Context, args model.QueryArgs) ([]uint64, error) {
	args = args.Normalized()

	var ids []uint64
	err := applyFilters(r.db.WithContext(ctx).Model(&model.Coupon{}), args).
		Order(fmt.Sprintf("%s %s", args.OrderBy, args.Order)).
		Limit(args.Number).
		Offset(args.Offset).
		Pluck("id", &ids).Error
	metrics.GetGlobalCollector().RecordDBQuery("select", "affiliate_coupons", err == nil)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Count 按条件统计总数，忽略分页
func (r *couponRepository) Count(ctx context.Context, args model.QueryArgs) (int64, error) {
	args = args.Normalized()

	var total int64
	err := applyFilters(r.db.WithContext(ctx).Model(&model.Coupon{}), args).
		Count(&total).Error
	metrics.GetGlobalCollector().RecordDBQuery("select", "affiliate_coupons", err == nil)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Exists 检查优惠券是否存在，避免加载整行
func (r *couponRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var probe int
	err := r.db.WithContext(ctx).
		Raw("SELECT 1 FROM affiliate_coupons WHERE id = ? LIMIT 1", id).
		Scan(&probe).Error
	metrics.GetGlobalCollector().RecordDBQuery("select", "affiliate_coupons", err == nil)
	if err != nil {
		return false, err
	}
	return probe == 1, nil
}

// Update 更新优惠券
func (r *couponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	err := r.db.WithContext(ctx).Save(coupon).Error
	metrics.GetGlobalCollector().RecordDBQuery("update", "affiliate_coupons", err == nil)
	return err
}

// Delete 删除优惠券
func (r *couponRepository) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Delete(&model.Coupon{}, "id = ?", id).Error
	metrics.GetGlobalCollector().RecordDBQuery("delete", "affiliate_coupons", err == nil)
	return err
}
