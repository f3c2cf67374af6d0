package secure

import (
	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/gateway"
	"github.com/ceyewan/azulpay/idem"
	"github.com/ceyewan/azulpay/kv"
)

type options struct {
	requester gateway.Requester
	store     kv.Store
	guard     idem.Guard
	logger    clog.Logger
}

// Option 编排器选项
type Option func(*options)

// WithRequester 注入网关请求器（必须）
func WithRequester(r gateway.Requester) Option {
	return func(o *options) {
		o.requester = r
	}
}

// WithStore 注入会话与幂等状态的后端存储（必须）
//
// 多进程部署时所有实例必须共享同一个后端，webhook 才能路由到
// 任意实例。
func WithStore(store kv.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithGuard 注入自定义幂等组件
//
// 不提供时编排器会基于 WithStore 的存储自行构建。
func WithGuard(g idem.Guard) Option {
	return func(o *options) {
		o.guard = g
	}
}

// WithLogger 注入日志器
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
