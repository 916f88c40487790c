package model

import "time"

// Discount EDD集成侧的折扣记录
// is_coupon_template 标记该折扣是否作为自动生成优惠券的模板，
// 值越大优先级越高。
type Discount struct {
	ID               uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"column:name;size:200" json:"name"`
	Code             string    `gorm:"column:code;size:100" json:"code"`
	Status           string    `gorm:"column:status;size:30" json:"status"`
	IsCouponTemplate int       `gorm:"column:is_coupon_template" json:"isCouponTemplate"`
	DateCreated      time.Time `gorm:"column:date_created;autoCreateTime" json:"dateCreated"`
}

// TableName 指定表名
func (Discount) TableName() string {
	return "edd_discounts"
}
