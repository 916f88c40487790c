package handler

import (
	"net/http"
	"strconv"

	"affiliate_coupons/internal/domain/integration/service"
	"affiliate_coupons/pkg/response"

	"github.com/gin-gonic/gin"
)

type IntegrationHandler struct {
	service service.IntegrationService
}

func NewIntegrationHandler(svc service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{service: svc}
}

// GetCouponTemplate 获取集成的优惠券模板ID
func (h *IntegrationHandler) GetCouponTemplate(c *gin.Context) {
	integration := c.Param("integration")

	templateID, err := h.service.TemplateID(c.Request.Context(), integration)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"templateId": templateID})
}

// GetCouponEditURL 获取模板在集成后台的编辑链接
func (h *IntegrationHandler) GetCouponEditURL(c *gin.Context) {
	integration := c.Param("integration")
	couponID, _ := strconv.ParseUint(c.Query("coupon_id"), 10, 64)

	url, err := h.service.EditURL(c.Request.Context(), couponID, integration)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	if url == "" {
		response.Fail(c, response.ErrInvalidIntegration, "Unrecognized integration")
		return
	}
	response.Success(c, gin.H{"editUrl": url})
}
