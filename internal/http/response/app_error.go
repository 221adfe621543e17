package response

import (
	"github.com/gin-gonic/gin"
)

// AppError 接口层错误：业务状态码、文案 key、已本地化文案以及原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	text := e.Message
	if text == "" {
		text = e.Key
	}
	if e.Err == nil {
		return text
	}
	return text + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError 创建接口层错误
func NewAppError(code int, key, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
		Err:     err,
	}
}

// Abort 写出错误响应并中止后续中间件与处理器
func Abort(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		appErr = NewAppError(CodeInternal, "", "internal server error", nil)
	}
	Error(c, appErr.Code, appErr.Message)
	c.Abort()
}
