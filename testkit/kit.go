// Package testkit 提供测试辅助工具，统一管理测试依赖的创建与清理。
package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ceyewan/azulpay/clog"
)

// Kit 包含通用的测试依赖
type Kit struct {
	Ctx    context.Context
	Logger clog.Logger
}

// NewKit 返回一个包含默认依赖的测试工具包
func NewKit(t *testing.T) *Kit {
	return &Kit{
		Ctx:    context.Background(),
		Logger: NewLogger(),
	}
}

// NewLogger 返回一个用于测试的 logger
// 开发环境格式，适合本地调试
func NewLogger() clog.Logger {
	logger, err := clog.New(clog.NewDevDefaultConfig("azulpay"))
	if err != nil {
		return clog.Discard()
	}
	return logger
}

// NewID 返回一个随机测试标识，避免并行测试间的键冲突
func NewID() string {
	return uuid.New().String()
}

// NewContext 返回一个带超时的测试上下文
// 生命周期由 t.Cleanup 管理
func NewContext(t *testing.T, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
