package shared

import (
	"errors"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/i18n"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应并中止请求，有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error, args ...interface{}) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	if len(args) > 0 {
		msg = i18n.Sprintf(locale, key, args...)
	}
	appErr := response.NewAppError(code, key, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"key", appErr.Key,
			"error", err,
		)
	}
	response.Abort(c, appErr)
}

// MappedHandlerError 定义业务错误到接口错误响应的映射关系。
type MappedHandlerError struct {
	Target error
	Code   int
	Key    string
}

// keyedError 自带文案 key 与参数的错误（字段校验、密码策略）
type keyedError interface {
	error
	Key() string
	Args() []interface{}
}

// ServiceErrorRules 具体错误优先，其后按错误分类兜底
var ServiceErrorRules = []MappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrCartNotFound, Code: response.CodeNotFound, Key: "error.cart_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrProductNotInCart, Code: response.CodeNotFound, Key: "error.product_not_in_cart"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
	{Target: service.ErrInvalidProductID, Code: response.CodeBadRequest, Key: "error.product_id_invalid"},
	{Target: service.ErrInvalidPrice, Code: response.CodeBadRequest, Key: "error.price_invalid"},
	{Target: service.ErrNameRequired, Code: response.CodeBadRequest, Key: "error.name_required"},
	{Target: service.ErrCategoryRequired, Code: response.CodeBadRequest, Key: "error.category_required"},
	{Target: service.ErrCategoryInvalid, Code: response.CodeBadRequest, Key: "error.category_invalid"},
	{Target: service.ErrCartItemProductChanged, Code: response.CodeBadRequest, Key: "error.cart_item_product_fixed"},
	{Target: service.ErrInvalidImage, Code: response.CodeBadRequest, Key: "error.image_invalid"},
	{Target: service.ErrInvalidUsername, Code: response.CodeBadRequest, Key: "error.username_invalid"},
	{Target: service.ErrUsernameExists, Code: response.CodeBadRequest, Key: "error.username_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrInvalidToken, Code: response.CodeUnauthorized, Key: "error.token_invalid"},
	{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Key: "error.user_disabled"},
	{Target: service.ErrValidation, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrAuthenticationRequired, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}

// RespondServiceError 按映射表返回业务错误，未映射的错误记录日志并返回 500。
func RespondServiceError(c *gin.Context, err error) {
	RespondWithMappedError(c, err, ServiceErrorRules, response.CodeInternal, "error.internal")
}

// RespondWithMappedError 依次匹配规则，全部未命中时使用兜底响应。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedHandlerError, fallbackCode int, fallbackKey string) {
	var keyed keyedError
	if errors.As(err, &keyed) && errors.Is(err, service.ErrValidation) {
		RespondError(c, response.CodeBadRequest, keyed.Key(), nil, keyed.Args()...)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}
