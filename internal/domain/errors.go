package domain

import (
	"errors"
	"fmt"
)

// ErrorKind 错误分类（闭集）
// Repository / Service 层统一返回 *Error，由表现层决定对用户可见的形式
type ErrorKind string

const (
	KindValidation ErrorKind = "validation" // 输入缺失或格式错误
	KindConflict   ErrorKind = "conflict"   // 唯一性冲突
	KindNotFound   ErrorKind = "not_found"  // 引用的实体不存在
	KindAuth       ErrorKind = "auth"       // 凭证无效
	KindForbidden  ErrorKind = "forbidden"  // 角色权限不足
	KindStorage    ErrorKind = "storage"    // 底层存储失败
)

// Error 领域错误，携带分类与原始原因
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func NewConflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func NewNotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func NewAuth(format string, args ...any) *Error {
	return newError(KindAuth, format, args...)
}

func NewForbidden(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

// NewStorage 包装底层存储错误，保留原始原因供日志使用
func NewStorage(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf 提取错误分类；非领域错误一律视为存储错误
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorage
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsAuth(err error) bool       { return IsKind(err, KindAuth) }
func IsForbidden(err error) bool  { return IsKind(err, KindForbidden) }
