package service

import (
	"errors"
	"fmt"

	"github.com/agencysite/internal/store"
)

var (
	// ErrNotFound 在指定记录不存在时返回
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput 在必填项缺失或格式不正确时返回
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPricing 在价格方案 JSON 无法解析时返回
	ErrInvalidPricing = errors.New("invalid pricing json")
	// ErrInvalidStatus 在状态值不在允许范围内时返回
	ErrInvalidStatus = errors.New("invalid status")
	// ErrDuplicate 在唯一键冲突时返回
	ErrDuplicate = errors.New("record already exists")
)

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// translate 将 store 层错误映射为 service 层的哨兵错误
func translate(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
