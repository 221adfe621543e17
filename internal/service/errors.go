package service

import (
	"errors"
	"fmt"
)

// 错误分类：处理器按分类映射 HTTP 状态码
var (
	ErrValidation             = errors.New("validation error")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("not found")
)

// 具体错误，均包装所属分类
var (
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("%w: product", ErrNotFound)
	ErrCartNotFound     = fmt.Errorf("%w: cart", ErrNotFound)
	ErrCartItemNotFound = fmt.Errorf("%w: cart item", ErrNotFound)
	ErrProductNotInCart = fmt.Errorf("%w: product not in cart", ErrNotFound)

	ErrCartForbidden     = fmt.Errorf("%w: cart belongs to another user", ErrForbidden)
	ErrCartItemForbidden = fmt.Errorf("%w: cart item belongs to another user", ErrForbidden)

	ErrInvalidQuantity        = fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	ErrInvalidProductID       = fmt.Errorf("%w: invalid product id", ErrValidation)
	ErrInvalidPrice           = fmt.Errorf("%w: invalid price", ErrValidation)
	ErrNameRequired           = fmt.Errorf("%w: name required", ErrValidation)
	ErrCategoryRequired       = fmt.Errorf("%w: category required", ErrValidation)
	ErrCategoryInvalid        = fmt.Errorf("%w: category does not exist", ErrValidation)
	ErrCartItemProductChanged = fmt.Errorf("%w: cart item product is immutable", ErrValidation)
	ErrInvalidImage           = fmt.Errorf("%w: invalid image", ErrValidation)

	ErrInvalidUsername    = fmt.Errorf("%w: invalid username", ErrValidation)
	ErrUsernameExists     = fmt.Errorf("%w: username exists", ErrValidation)
	ErrWeakPassword       = fmt.Errorf("%w: weak password", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuthenticationRequired)
	ErrUserDisabled       = fmt.Errorf("%w: user disabled", ErrForbidden)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrAuthenticationRequired)
)

// FieldError 带字段与文案 key 的校验错误
type FieldError struct {
	Field string
	key   string
	args  []interface{}
}

// NewFieldError 创建字段校验错误
func NewFieldError(field, key string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, key: key, args: args}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation error: %s (%s)", e.Field, e.key)
}

// Is 字段错误属于校验错误分类
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// Key 文案 key
func (e *FieldError) Key() string {
	return e.key
}

// Args 文案参数
func (e *FieldError) Args() []interface{} {
	return e.args
}
