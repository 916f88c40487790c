package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"affiliate_coupons/internal/domain/coupon/model"
	"affiliate_coupons/internal/domain/coupon/service"
	"affiliate_coupons/pkg/response"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	service   service.CouponService
	validator service.ReferralValidator
}

func NewCouponHandler(svc service.CouponService, validator service.ReferralValidator) *CouponHandler {
	return &CouponHandler{service: svc, validator: validator}
}

// CreateCouponInput 创建优惠券输入
type CreateCouponInput struct {
	AffiliateID         uint64       `json:"affiliateId" binding:"required"`
	IntegrationCouponID uint64       `json:"integrationCouponId"`
	Code                string       `json:"code"`
	Referrals           model.IDList `json:"referrals" binding:"required"`
	Integration         string       `json:"integration"`
	Owner               uint64       `json:"owner"`
	Status              string       `json:"status"`
	ExpirationDate      time.Time    `json:"expirationDate"`
}

// CreateCoupon 创建优惠券
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var input CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	// owner 缺省为当前登录用户 (由 AuthMiddleware 设置)
	if input.Owner == 0 {
		if userID, exists := c.Get("userID"); exists {
			if uid, ok := userID.(uint64); ok {
				input.Owner = uid
			}
		}
	}

	id, err := h.service.Add(c.Request.Context(), service.AddCouponArgs{
		AffiliateID:         input.AffiliateID,
		IntegrationCouponID: input.IntegrationCouponID,
		Code:                input.Code,
		ReferralIDs:         input.Referrals,
		Integration:         input.Integration,
		Owner:               input.Owner,
		Status:              input.Status,
		ExpirationDate:      input.ExpirationDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrAffiliateNotFound) {
			response.Fail(c, response.ErrAffiliateNotFound, "Affiliate does not exist")
			return
		}
		if errors.Is(err, service.ErrNoValidReferrals) {
			response.Fail(c, response.ErrNoValidReferrals, "No valid referrals for this affiliate")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"couponId": id})
}

// queryArgsFromRequest 从查询串组装过滤条件，ID类参数接受逗号分隔列表
func queryArgsFromRequest(c *gin.Context) model.QueryArgs {
	number, _ := strconv.Atoi(c.Query("number"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	return model.QueryArgs{
		CouponID:    model.SplitIDList(c.Query("coupon_id")),
		AffiliateID: model.SplitIDList(c.Query("affiliate_id")),
		Owner:       model.SplitIDList(c.Query("owner")),
		Integration: c.Query("integration"),
		Status:      c.Query("status"),
		Order:       c.Query("order"),
		OrderBy:     c.Query("orderby"),
		Number:      number,
		Offset:      offset,
		Fields:      c.Query("fields"),
	}
}

// ListCoupons 按条件查询优惠券，fields=ids 时只返回ID列表
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	args := queryArgsFromRequest(c)

	if args.Normalized().Fields == "ids" {
		ids, err := h.service.ListIDs(c.Request.Context(), args)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
			return
		}
		response.Success(c, ids)
		return
	}

	coupons, err := h.service.List(c.Request.Context(), args)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, coupons)
}

// CountCoupons 按条件统计优惠券总数
func (h *CouponHandler) CountCoupons(c *gin.Context) {
	total, err := h.service.Count(c.Request.Context(), queryArgsFromRequest(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"total": total})
}

// GetCoupon 获取单个优惠券
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid coupon ID")
		return
	}

	coupon, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	if coupon == nil {
		response.Error(c, http.StatusNotFound, response.ErrCouponNotFound, "Coupon not found")
		return
	}
	response.Success(c, coupon)
}

// GetReferralIDs 获取优惠券关联的推荐记录ID
func (h *CouponHandler) GetReferralIDs(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid coupon ID")
		return
	}

	ids, err := h.service.GetReferralIDs(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, ids)
}

// CouponExists 检查优惠券是否存在
func (h *CouponHandler) CouponExists(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid coupon ID")
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"exists": exists})
}

// UpdateCouponInput 更新优惠券输入
type UpdateCouponInput struct {
	Code           string     `json:"code"`
	Status         string     `json:"status"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

// UpdateCoupon 更新优惠券
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid coupon ID")
		return
	}

	var input UpdateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	coupon, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	if coupon == nil {
		response.Error(c, http.StatusNotFound, response.ErrCouponNotFound, "Coupon not found")
		return
	}

	if input.Code != "" {
		coupon.Code = model.SanitizeKey(input.Code)
	}
	if input.Status != "" {
		coupon.Status = model.SanitizeKey(input.Status)
	}
	if input.ExpirationDate != nil {
		coupon.ExpirationDate = *input.ExpirationDate
	}

	if err := h.service.Update(c.Request.Context(), coupon); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid coupon ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, true)
}

// GroupReferrals 把推荐记录ID按归属推广员分组
// 默认只统计已结算的记录；显式传 status= 空值可关闭状态过滤
func (h *CouponHandler) GroupReferrals(c *gin.Context) {
	ids := model.SplitIDList(c.Query("ids"))
	if len(ids) == 0 {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "ids parameter is required")
		return
	}

	statusFilter := service.DefaultGroupStatus
	if status, exists := c.GetQuery("status"); exists {
		statusFilter = status
	}

	grouped, err := h.validator.GroupByAffiliate(c.Request.Context(), ids, statusFilter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, grouped)
}

func parseID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
