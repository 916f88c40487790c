package service

import (
	"context"
	"testing"

	"affiliate_coupons/internal/domain/affiliate/model"
	couponmodel "affiliate_coupons/internal/domain/coupon/model"
	"affiliate_coupons/internal/pkg/hooks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCouponRepo 模拟优惠券仓储
type mockCouponRepo struct {
	mock.Mock
}

func (m *mockCouponRepo) Create(ctx context.Context, coupon *couponmodel.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *mockCouponRepo) GetByID(ctx context.Context, id uint64) (*couponmodel.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*couponmodel.Coupon), args.Error(1)
}

func (m *mockCouponRepo) List(ctx context.Context, qa couponmodel.QueryArgs) ([]couponmodel.Coupon, error) {
	args := m.Called(ctx, qa)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]couponmodel.Coupon), args.Error(1)
}

func (m *mockCouponRepo) ListIDs(ctx context.Context, qa couponmodel.QueryArgs) ([]uint64, error) {
	args := m.Called(ctx, qa)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *mockCouponRepo) Count(ctx context.Context, qa couponmodel.QueryArgs) (int64, error) {
	args := m.Called(ctx, qa)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCouponRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCouponRepo) Update(ctx context.Context, coupon *couponmodel.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *mockCouponRepo) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockAffiliateRepo 模拟推广员仓储
type mockAffiliateRepo struct {
	mock.Mock
}

func (m *mockAffiliateRepo) GetByID(ctx context.Context, id uint64) (*model.Affiliate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Affiliate), args.Error(1)
}

func (m *mockAffiliateRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// mockValidator 模拟推荐记录校验器
type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Resolve(ctx context.Context, affiliateID uint64, referralIDs []uint64) ([]uint64, error) {
	args := m.Called(ctx, affiliateID, referralIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *mockValidator) GroupByAffiliate(ctx context.Context, referralIDs []uint64, statusFilter string) (map[uint64][]uint64, error) {
	args := m.Called(ctx, referralIDs, statusFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64][]uint64), args.Error(1)
}

func newTestService() (*mockCouponRepo, *mockAffiliateRepo, *mockValidator, *hooks.Registry, CouponService) {
	repo := new(mockCouponRepo)
	affiliates := new(mockAffiliateRepo)
	validator := new(mockValidator)
	registry := hooks.NewRegistry()
	svc := NewCouponService(repo, affiliates, validator, registry)
	return repo, affiliates, validator, registry, svc
}

func TestAddPersistsOnlyOwnedReferrals(t *testing.T) {
	repo, affiliates, validator, _, svc := newTestService()
	ctx := context.Background()

	affiliates.On("Exists", ctx, uint64(1)).Return(true, nil)
	// R2 归属其他推广员，被校验器过滤掉
	validator.On("Resolve", ctx, uint64(1), []uint64{10, 20}).Return([]uint64{10}, nil)

	var persisted *couponmodel.Coupon
	repo.On("Create", ctx, mock.AnythingOfType("*model.Coupon")).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*couponmodel.Coupon)
		persisted.ID = 11
	}).Return(nil)

	id, err := svc.Add(ctx, AddCouponArgs{
		AffiliateID: 1,
		ReferralIDs: couponmodel.IDList{10, 20},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint64(11), id)
	require.NotNil(t, persisted)
	assert.Equal(t, "10", persisted.Referrals)
	assert.Equal(t, couponmodel.StatusActive, persisted.Status)
	repo.AssertExpectations(t)
}

func TestAddRejectedWhenAllReferralsInvalid(t *testing.T) {
	repo, affiliates, validator, _, svc := newTestService()
	ctx := context.Background()

	affiliates.On("Exists", ctx, uint64(1)).Return(true, nil)
	validator.On("Resolve", ctx, uint64(1), []uint64{20}).Return([]uint64{}, nil)

	_, err := svc.Add(ctx, AddCouponArgs{
		AffiliateID: 1,
		ReferralIDs: couponmodel.IDList{20},
	})

	assert.ErrorIs(t, err, ErrNoValidReferrals)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddRejectedWhenAffiliateMissing(t *testing.T) {
	repo, affiliates, validator, _, svc := newTestService()
	ctx := context.Background()

	affiliates.On("Exists", ctx, uint64(404)).Return(false, nil)

	_, err := svc.Add(ctx, AddCouponArgs{
		AffiliateID: 404,
		ReferralIDs: couponmodel.IDList{10},
	})

	assert.ErrorIs(t, err, ErrAffiliateNotFound)
	// 推广员校验失败时不触碰推荐记录存储
	validator.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddSanitizesStatusWithoutEnumCoercion(t *testing.T) {
	repo, affiliates, validator, _, svc := newTestService()
	ctx := context.Background()

	affiliates.On("Exists", ctx, uint64(1)).Return(true, nil)
	validator.On("Resolve", ctx, uint64(1), []uint64{10}).Return([]uint64{10}, nil)

	var persisted *couponmodel.Coupon
	repo.On("Create", ctx, mock.AnythingOfType("*model.Coupon")).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*couponmodel.Coupon)
		persisted.ID = 12
	}).Return(nil)

	// 写入侧只做键归一，未知值原样保留（与查询侧的枚举收敛不同）
	_, err := svc.Add(ctx, AddCouponArgs{
		AffiliateID: 1,
		ReferralIDs: couponmodel.IDList{10},
		Status:      "Bogus!",
		Code:        "Summer Sale",
	})

	assert.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "bogus", persisted.Status)
	assert.Equal(t, "summersale", persisted.Code)
}

func TestAddFiresCreatedHook(t *testing.T) {
	repo, affiliates, validator, registry, svc := newTestService()
	ctx := context.Background()

	var notified uint64
	registry.AddAction(hooks.ActionCouponCreated, func(args ...interface{}) {
		notified = args[0].(uint64)
	})

	affiliates.On("Exists", ctx, uint64(1)).Return(true, nil)
	validator.On("Resolve", ctx, uint64(1), []uint64{10}).Return([]uint64{10}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*model.Coupon")).Run(func(args mock.Arguments) {
		args.Get(1).(*couponmodel.Coupon).ID = 77
	}).Return(nil)

	id, err := svc.Add(ctx, AddCouponArgs{AffiliateID: 1, ReferralIDs: couponmodel.IDList{10}})

	assert.NoError(t, err)
	assert.Equal(t, uint64(77), id)
	assert.Equal(t, uint64(77), notified)
}

func TestGetReferralIDs(t *testing.T) {
	repo, _, _, _, svc := newTestService()
	ctx := context.Background()

	repo.On("GetByID", ctx, uint64(7)).Return(&couponmodel.Coupon{ID: 7, Referrals: "4,8,15"}, nil)

	ids, err := svc.GetReferralIDs(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, []uint64{4, 8, 15}, ids)
}

func TestGetReferralIDsAbsentCoupon(t *testing.T) {
	repo, _, _, _, svc := newTestService()
	ctx := context.Background()

	repo.On("GetByID", ctx, uint64(404)).Return(nil, nil)

	ids, err := svc.GetReferralIDs(ctx, 404)

	assert.NoError(t, err)
	assert.Empty(t, ids)
}
