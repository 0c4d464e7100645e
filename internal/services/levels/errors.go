package levels

import (
	"errors"
	"fmt"
)

// 查询类错误
var (
	ErrLevelNotFound = errors.New("level not found")
	ErrImageNotFound = errors.New("image not found")
)

// ValidationError 输入校验失败，应映射为 400
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError 创建校验错误
func NewValidationError(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

// AsValidationError 判断并提取校验错误
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// MediaError 级联删除媒体时部分失败，携带仍残留的存储对象
type MediaError struct {
	Message        string
	RemainingMedia []string
	Cause          error
}

func (e *MediaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MediaError) Unwrap() error {
	return e.Cause
}

// AsMediaError 判断并提取媒体错误
func AsMediaError(err error) (*MediaError, bool) {
	var me *MediaError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
