package gateway

import (
	"errors"

	"github.com/ceyewan/azulpay/xerrors"
)

var (
	// ErrConfigNil 配置为空
	ErrConfigNil = xerrors.New("gateway: config is nil")

	// ErrBadStatus 网关返回非 200 状态码
	ErrBadStatus = xerrors.New("gateway: unexpected http status")

	// ErrMalformedResponse 响应体无法解析或缺少判别所需字段
	ErrMalformedResponse = xerrors.New("gateway: malformed response")
)

// TransportError 传输层失败（网络、TLS、HTTP 状态）
//
// 本包不重试，原样传播给上层；配合幂等键由上层决定是否重试。
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "gateway: transport failure: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsTransport 判断错误链中是否存在传输层失败
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
