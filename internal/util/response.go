package util

import (
	"fmt"
	"net/http"
	"question_bank_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response 错误响应结构，成功响应在此基础上附加业务字段
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func withStatus(data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["status"] = StatusSuccess
	return data
}

func Success(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, withStatus(data))
}

func Created(c *gin.Context, data gin.H) {
	c.JSON(http.StatusCreated, withStatus(data))
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Status:  StatusError,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "too many requests")
}

// HandleError 按错误类型映射状态码；内部错误记录日志并把原因带回给调用方
func HandleError(c *gin.Context, action string, err error) {
	switch KindOf(err) {
	case KindValidation:
		BadRequest(c, err.Error())
	case KindNotFound:
		NotFound(c, err.Error())
	default:
		logger.Log.Error(action,
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Error(err),
		)
		Error(c, http.StatusInternalServerError, fmt.Sprintf("%s: %v", action, err))
	}
}

// RequestIDKey 请求 ID 在 gin.Context 中的键
const RequestIDKey = "request_id"
