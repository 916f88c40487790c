package service

import (
	"context"
	"testing"

	referralmodel "affiliate_coupons/internal/domain/referral/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockReferralRepo 模拟推荐记录仓储
type mockReferralRepo struct {
	mock.Mock
}

func (m *mockReferralRepo) GetByID(ctx context.Context, id uint64) (*referralmodel.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*referralmodel.Referral), args.Error(1)
}

func (m *mockReferralRepo) ListByIDs(ctx context.Context, ids []uint64) ([]referralmodel.Referral, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]referralmodel.Referral), args.Error(1)
}

func TestResolveDropsMissingAndForeignReferrals(t *testing.T) {
	repo := new(mockReferralRepo)
	ctx := context.Background()

	repo.On("GetByID", ctx, uint64(10)).Return(&referralmodel.Referral{ID: 10, AffiliateID: 1}, nil)
	repo.On("GetByID", ctx, uint64(20)).Return(&referralmodel.Referral{ID: 20, AffiliateID: 2}, nil)
	repo.On("GetByID", ctx, uint64(30)).Return(nil, nil)

	validator := NewReferralValidator(repo)
	valid, err := validator.Resolve(ctx, 1, []uint64{10, 20, 30})

	assert.NoError(t, err)
	assert.Equal(t, []uint64{10}, valid)
}

func TestResolveDeduplicatesCandidates(t *testing.T) {
	repo := new(mockReferralRepo)
	ctx := context.Background()

	repo.On("GetByID", ctx, uint64(10)).Return(&referralmodel.Referral{ID: 10, AffiliateID: 1}, nil).Once()

	validator := NewReferralValidator(repo)
	valid, err := validator.Resolve(ctx, 1, []uint64{10, 10, 10})

	assert.NoError(t, err)
	assert.Equal(t, []uint64{10}, valid)
	repo.AssertExpectations(t)
}

func TestGroupByAffiliateFiltersByStatus(t *testing.T) {
	repo := new(mockReferralRepo)
	ctx := context.Background()

	repo.On("GetByID", ctx, uint64(10)).Return(&referralmodel.Referral{ID: 10, AffiliateID: 1, Status: referralmodel.StatusPaid}, nil)
	repo.On("GetByID", ctx, uint64(20)).Return(&referralmodel.Referral{ID: 20, AffiliateID: 1, Status: referralmodel.StatusPending}, nil)
	repo.On("GetByID", ctx, uint64(30)).Return(&referralmodel.Referral{ID: 30, AffiliateID: 2, Status: referralmodel.StatusPaid}, nil)

	validator := NewReferralValidator(repo)
	grouped, err := validator.GroupByAffiliate(ctx, []uint64{10, 20, 30}, DefaultGroupStatus)

	assert.NoError(t, err)
	assert.Equal(t, map[uint64][]uint64{
		1: {10},
		2: {30},
	}, grouped)
}

func TestGroupByAffiliateEmptyStatusDisablesFilter(t *testing.T) {
	repo := new(mockReferralRepo)
	ctx := context.Background()

	repo.On("GetByID", ctx, uint64(10)).Return(&referralmodel.Referral{ID: 10, AffiliateID: 1, Status: referralmodel.StatusPaid}, nil)
	repo.On("GetByID", ctx, uint64(20)).Return(&referralmodel.Referral{ID: 20, AffiliateID: 1, Status: referralmodel.StatusPending}, nil)

	validator := NewReferralValidator(repo)
	grouped, err := validator.GroupByAffiliate(ctx, []uint64{10, 20}, "")

	assert.NoError(t, err)
	assert.Equal(t, map[uint64][]uint64{1: {10, 20}}, grouped)
}

func TestGroupByAffiliateSkipsMissingReferrals(t *testing.T) {
	repo := new(mockReferralRepo)
	ctx := context.Background()

	repo.On("GetByID", ctx, uint64(404)).Return(nil, nil)

	validator := NewReferralValidator(repo)
	grouped, err := validator.GroupByAffiliate(ctx, []uint64{404}, "")

	assert.NoError(t, err)
	assert.Empty(t, grouped)
}
