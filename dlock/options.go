package dlock

import (
	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/kv"
)

// Option 组件初始化选项函数
type Option func(*options)

// options 组件初始化选项配置（内部使用，小写）
type options struct {
	store  kv.Store
	logger clog.Logger
}

// WithStore 注入键值存储（必填）
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
