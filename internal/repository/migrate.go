package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/internal/model"
)

// Models 参与迁移的全部模型
func Models() []any {
	return []any{&model.User{}, &model.Recipe{}, &model.Order{}}
}

// AutoMigrate 初始化数据库表结构
func AutoMigrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	return nil
}

// isUniqueViolation 兜底识别未被驱动翻译的唯一约束错误
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
