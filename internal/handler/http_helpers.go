package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// bindPayload 同时接受 JSON 与表单提交
func bindPayload(c *gin.Context, dst interface{}) error {
	if c.ContentType() == binding.MIMEJSON {
		return c.ShouldBindJSON(dst)
	}
	return c.ShouldBind(dst)
}

// invalidPayload 将绑定错误归为输入错误
func invalidPayload(err error) error {
	return fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
}

// wantsJSON 判断调用方是否期望 JSON 响应
func wantsJSON(c *gin.Context) bool {
	if c.ContentType() == binding.MIMEJSON {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), binding.MIMEJSON)
}

// statusFor 将 service 层哨兵错误映射为 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidPricing),
		errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError 返回固定的失败文案；校验类错误附带 detail，其余错误只记录到 gin 上下文
func respondServiceError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if errors.Is(err, service.ErrInvalidPricing) {
		message = "Invalid pricing JSON format"
	}
	if status == http.StatusInternalServerError {
		c.Error(err)
		respondError(c, status, message)
		return
	}
	c.JSON(status, gin.H{"error": message, "detail": err.Error()})
}

func respondMessage(c *gin.Context, message string, extra gin.H) {
	payload := gin.H{"message": message}
	for key, value := range extra {
		payload[key] = value
	}
	c.JSON(http.StatusOK, payload)
}
