package gateway

import "github.com/ceyewan/azulpay/clog"

// Option 组件初始化选项函数
type Option func(*options)

// options 内部选项配置
type options struct {
	logger clog.Logger
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
