package repository

import (
	"errors"
	"math"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// translate 将 GORM 的未找到错误转换为 ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// offset 计算分页偏移量,超出范围时取 math.MaxInt32
func offset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt32/pageSize {
		return math.MaxInt32
	}
	return (page - 1) * pageSize
}
