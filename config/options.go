package config

import "github.com/ceyewan/azulpay/clog"

type options struct {
	logger clog.Logger
}

// Option 加载器选项
type Option func(*options)

// WithLogger 注入日志器
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
