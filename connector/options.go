package connector

import "github.com/ceyewan/azulpay/clog"

// Option 连接器初始化选项函数
type Option func(*options)

// options 内部选项配置
type options struct {
	logger clog.Logger
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func (o *options) applyDefaults() {
	if o.logger == nil {
		o.logger = clog.Discard()
	}
}
