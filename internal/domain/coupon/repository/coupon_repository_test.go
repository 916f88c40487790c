package repository

import (
	"context"
	"testing"
	"time"

	"affiliate_coupons/internal/domain/coupon/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (CouponRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewCouponRepository(gdb), mock
}

func couponRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "integration_coupon_id", "affiliate_id", "referrals",
		"integration", "owner", "status", "code", "expiration_date",
	})
}

func TestCreateCoupon(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "affiliate_coupons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint64(11)))
	mock.ExpectCommit()

	coupon := &model.Coupon{
		AffiliateID: 1,
		Referrals:   "4,8",
		Status:      model.StatusActive,
	}
	err := repo.Create(context.Background(), coupon)

	assert.NoError(t, err)
	assert.Equal(t, uint64(11), coupon.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDReturnsNilWhenAbsent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "affiliate_coupons" WHERE id = \$1`).
		WillReturnRows(couponRows())

	coupon, err := repo.GetByID(context.Background(), 404)

	assert.NoError(t, err)
	assert.Nil(t, coupon)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "affiliate_coupons" WHERE id = \$1`).
		WillReturnRows(couponRows().
			AddRow(uint64(7), uint64(0), uint64(1), "4,8", "edd", uint64(9), "active", "summer", time.Now()))

	coupon, err := repo.GetByID(context.Background(), 7)

	assert.NoError(t, err)
	require.NotNil(t, coupon)
	assert.Equal(t, uint64(7), coupon.ID)
	assert.Equal(t, []uint64{4, 8}, coupon.ReferralIDs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBindsFilterValuesAsParameters(t *testing.T) {
	repo, mock := newMockRepo(t)

	// integration 和归一后的 status 必须以占位符绑定，而不是拼进SQL
	mock.ExpectQuery(`SELECT \* FROM "affiliate_coupons" WHERE integration = \$1 AND status = \$2 ORDER BY id DESC LIMIT \$3`).
		WithArgs("edd", "active", 2).
		WillReturnRows(couponRows())

	_, err := repo.List(context.Background(), model.QueryArgs{
		Integration: "edd",
		Status:      "bogus", // 查询侧未知状态归一为 active
		Number:      2,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrderByFallsBackToID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`ORDER BY id ASC`).
		WillReturnRows(couponRows())

	_, err := repo.List(context.Background(), model.QueryArgs{
		OrderBy: "not_a_column",
		Order:   "asc",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUnboundedUsesSentinelLimit(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "affiliate_coupons" ORDER BY id DESC LIMIT \$1`).
		WithArgs(model.MaxQueryLimit).
		WillReturnRows(couponRows())

	_, err := repo.List(context.Background(), model.QueryArgs{Number: 0})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIDs(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT "id" FROM "affiliate_coupons" WHERE affiliate_id IN \(\$1,\$2\)`).
		WithArgs(uint64(1), uint64(2), model.MaxQueryLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint64(5)).AddRow(uint64(3)))

	ids, err := repo.ListIDs(context.Background(), model.QueryArgs{
		AffiliateID: model.IDList{1, 2},
	})

	assert.NoError(t, err)
	assert.Equal(t, []uint64{5, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountIgnoresPagination(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "affiliate_coupons" WHERE owner IN \(\$1\)`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	total, err := repo.Count(context.Background(), model.QueryArgs{
		Owner:  model.IDList{9},
		Number: 5,
		Offset: 10,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT 1 FROM affiliate_coupons WHERE id = \$1 LIMIT 1`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 7)

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsFalseWhenNoRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT 1 FROM affiliate_coupons WHERE id = \$1 LIMIT 1`).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.Exists(context.Background(), 404)

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
