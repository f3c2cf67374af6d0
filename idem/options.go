package idem

import (
	"time"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/kv"
)

// Option 组件初始化选项函数
type Option func(*options)

// ExecuteOption 单次执行的选项函数
type ExecuteOption func(*executeOptions)

// options 组件初始化选项配置（内部使用，小写）
type options struct {
	store  kv.Store
	logger clog.Logger
}

// executeOptions 单次执行选项（内部使用，小写）
type executeOptions struct {
	lockTimeout time.Duration
}

// WithStore 注入键值存储（必填）
//
// 锁记录与结果缓存都写入这个存储，多进程部署时应指向同一个后端。
func WithStore(store kv.Store) Option {
	return func(o *options) {
		if store != nil {
			o.store = store
		}
	}
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLockTimeout 覆盖单次执行的锁超时
func WithLockTimeout(timeout time.Duration) ExecuteOption {
	return func(o *executeOptions) {
		if timeout > 0 {
			o.lockTimeout = timeout
		}
	}
}
