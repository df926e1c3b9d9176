package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrProtectedAccount 受保护账户（admin）不可删除
var ErrProtectedAccount = errors.New("repository: compte protégé")

// IsDuplicateKey 判断是否为唯一约束冲突
// 驱动未翻译错误时退回到错误文本判断
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
