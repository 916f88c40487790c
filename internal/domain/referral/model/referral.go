package model

import "time"

// 推荐记录状态
const (
	StatusPending  = "pending"
	StatusUnpaid   = "unpaid"
	StatusPaid     = "paid"
	StatusRejected = "rejected"
)

// Referral 推荐记录（佣金条目）
type Referral struct {
	ID          uint64    `gorm:"column:referral_id;primaryKey;autoIncrement" json:"referralId"`
	AffiliateID uint64    `gorm:"column:affiliate_id;index" json:"affiliateId"`
	Amount      float64   `gorm:"column:amount" json:"amount"`
	Status      string    `gorm:"column:status;size:30;default:pending" json:"status"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Reference   string    `gorm:"column:reference;size:100" json:"reference"`
	Context     string    `gorm:"column:context;size:50" json:"context"`
	Date        time.Time `gorm:"column:date;autoCreateTime" json:"date"`
}

// TableName 指定表名
func (Referral) TableName() string {
	return "referrals"
}
