// Package testutil 提供测试用的内存 sqlite 数据库
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/config"
	"github.com/d60-Lab/bakery-api/internal/repository"
	"github.com/d60-Lab/bakery-api/pkg/database"
)

var seq atomic.Int64

// Config 返回指向独立内存库的 sqlite 配置
func Config(tb testing.TB) *config.Config {
	tb.Helper()
	cfg := config.Default()
	cfg.Database.Driver = config.DriverSQLite
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	cfg.Database.URL = fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))
	return cfg
}

// NewDB 打开已迁移的内存库，测试结束时关闭
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := database.InitDB(Config(tb))
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}
