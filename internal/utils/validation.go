package utils

import (
	"regexp"
	"unicode/utf8"
)

// MaxIDLength 路径参数 ID 的最大长度,与数据库列宽一致
const MaxIDLength = 64

// MaxTextLength 申请原因和拒绝原因的最大字符数
const MaxTextLength = 2000

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateID 验证路径参数中的 ID,只允许字母、数字、连字符和下划线
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if len(id) > MaxIDLength {
		return ErrIDTooLong
	}
	if !idPattern.MatchString(id) {
		return ErrInvalidIDFormat
	}
	return nil
}

// ValidateTextLength 验证自由文本长度,按字符计数
func ValidateTextLength(s string) error {
	if utf8.RuneCountInString(s) > MaxTextLength {
		return ErrStringTooLong
	}
	return nil
}

// 错误定义
var (
	ErrEmptyID         = &ValidationError{Code: "empty_id", Message: "id cannot be empty"}
	ErrInvalidIDFormat = &ValidationError{Code: "invalid_id_format", Message: "id contains invalid characters"}
	ErrIDTooLong       = &ValidationError{Code: "id_too_long", Message: "id exceeds maximum length"}
	ErrStringTooLong   = &ValidationError{Code: "text_too_long", Message: "text exceeds maximum length"}
)

// ValidationError 验证错误
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
