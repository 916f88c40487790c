package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 优惠券模块错误 200xx
	ErrCouponNotFound     = 20001
	ErrAffiliateNotFound  = 20002
	ErrNoValidReferrals   = 20003
	ErrInvalidIntegration = 20004

	// 认证错误 100xx
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
