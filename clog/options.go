package clog

// Option 函数式选项
type Option func(*options)

// options 内部选项配置
type options struct {
	namespace []string
}

// WithNamespace 设置 Logger 的根命名空间
//
// 多个部分以 "." 连接，例如 WithNamespace("azulpay", "secure")
// 会产生命名空间 "azulpay.secure"。
func WithNamespace(parts ...string) Option {
	return func(o *options) {
		o.namespace = append(o.namespace, parts...)
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
