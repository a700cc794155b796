package service

import (
	"errors"
	"fmt"
)

// ==================== 错误分类 ====================

// ValidationError 客户端输入错误，4xx，不自动重试
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError 构造输入校验错误
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation 判断是否为输入校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("资源不存在")

	// ErrUnauthorized 未认证 / 认证失败
	// 对外永远是同一句话，不区分"token 坏了"还是"不是管理员"
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden 已认证但权限不足，同样只给一句通用话
	ErrForbidden = errors.New("forbidden")
)
