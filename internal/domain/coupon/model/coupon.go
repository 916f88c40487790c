package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// 优惠券状态
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// MaxQueryLimit 无分页查询的内部上限。number < 1 表示“不限制”，
// 用一个足够大的哨兵值代替真正的无限制。
const MaxQueryLimit = 999999999

// Coupon 优惠券
type Coupon struct {
	ID                  uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	IntegrationCouponID uint64    `gorm:"column:integration_coupon_id;index" json:"integrationCouponId"`
	AffiliateID         uint64    `gorm:"column:affiliate_id;index" json:"affiliateId"`
	Referrals           string    `gorm:"column:referrals;type:text" json:"referrals"`
	Integration         string    `gorm:"column:integration;size:100" json:"integration"`
	Owner               uint64    `gorm:"column:owner" json:"owner"`
	Status              string    `gorm:"column:status;size:30" json:"status"`
	Code                string    `gorm:"column:code;size:100" json:"code"`
	ExpirationDate      time.Time `gorm:"column:expiration_date;autoCreateTime" json:"expirationDate"`
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "affiliate_coupons"
}

// ReferralIDs 解析逗号拼接的推荐记录ID
func (c *Coupon) ReferralIDs() []uint64 {
	return SplitIDList(c.Referrals)
}

// SanitizeKey 把字符串归一为小写键：只保留 a-z 0-9 下划线和连字符
func SanitizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeStatus 查询侧的状态归一：未知的非空值一律当作 active
func NormalizeStatus(s string) string {
	s = SanitizeKey(s)
	if s != StatusActive && s != StatusInactive {
		return StatusActive
	}
	return s
}

// IDList 整数ID列表，JSON 反序列化时同时接受标量和数组
type IDList []uint64

// UnmarshalJSON 支持 5、"5"、[1,2] 等写法，负数取绝对值
func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*l = nil
	case float64:
		*l = IDList{absUint64(int64(v))}
	case string:
		*l = SplitIDList(v)
	case []interface{}:
		out := make(IDList, 0, len(v))
		for _, item := range v {
			switch n := item.(type) {
			case float64:
				out = append(out, absUint64(int64(n)))
			case string:
				if id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
					out = append(out, absUint64(id))
				}
			}
		}
		*l = out
	}
	return nil
}

func absUint64(v int64) uint64 {
	if v < 0 {
		v = -v
	}
	return uint64(v)
}

// UniqueIDs 去重并保持原有顺序
func UniqueIDs(ids []uint64) []uint64 {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SplitIDList 解析逗号分隔的ID串，非法片段直接跳过
func SplitIDList(s string) []uint64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, absUint64(id))
	}
	return out
}

// JoinIDs 把ID列表拼接成逗号分隔串（落库格式）
func JoinIDs(ids []uint64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ",")
}

// orderableColumns 允许排序的列，未识别的列回落到主键
var orderableColumns = map[string]struct{}{
	"id":                    {},
	"integration_coupon_id": {},
	"affiliate_id":          {},
	"referrals":             {},
	"integration":           {},
	"owner":                 {},
	"status":                {},
	"code":                  {},
	"expiration_date":       {},
}

// QueryArgs 优惠券查询条件，全部可选，AND 语义
type QueryArgs struct {
	CouponID    IDList `json:"couponId"`
	AffiliateID IDList `json:"affiliateId"`
	Owner       IDList `json:"owner"`
	Integration string `json:"integration"`
	Status      string `json:"status"`
	Order       string `json:"order"`
	OrderBy     string `json:"orderBy"`
	Number      int    `json:"number"`
	Offset      int    `json:"offset"`
	Fields      string `json:"fields"`
}

// Normalized 返回填满默认值后的查询条件副本。
// 缓存指纹和存储查询都基于归一后的条件，保证等价查询命中同一缓存键。
func (a QueryArgs) Normalized() QueryArgs {
	a.CouponID = UniqueIDs(a.CouponID)
	a.AffiliateID = UniqueIDs(a.AffiliateID)
	a.Owner = UniqueIDs(a.Owner)

	if a.Status != "" {
		a.Status = NormalizeStatus(a.Status)
	}

	// DESC 是默认值，其他任何写法都归一为 ASC
	switch strings.ToUpper(a.Order) {
	case "", "DESC":
		a.Order = "DESC"
	default:
		a.Order = "ASC"
	}

	if _, ok := orderableColumns[a.OrderBy]; !ok {
		a.OrderBy = "id"
	}

	if a.Number < 1 {
		a.Number = MaxQueryLimit
	}
	if a.Offset < 0 {
		a.Offset = 0
	}

	a.Fields = strings.ToLower(strings.TrimSpace(a.Fields))

	return a
}
