package model

import "time"

// 推广员状态
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// Affiliate 推广员
type Affiliate struct {
	ID           uint64    `gorm:"column:affiliate_id;primaryKey;autoIncrement" json:"affiliateId"`
	UserID       uint64    `gorm:"column:user_id;index" json:"userId"`
	Status       string    `gorm:"column:status;size:30;default:active" json:"status"`
	Rate         string    `gorm:"column:rate;size:30" json:"rate"`
	RateType     string    `gorm:"column:rate_type;size:30" json:"rateType"`
	PaymentEmail string    `gorm:"column:payment_email;size:100" json:"paymentEmail"`
	Earnings     float64   `gorm:"column:earnings" json:"earnings"`
	RegisterDate time.Time `gorm:"column:date_registered;autoCreateTime" json:"dateRegistered"`
}

// TableName 指定表名
func (Affiliate) TableName() string {
	return "affiliates"
}
