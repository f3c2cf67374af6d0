package secure

import "github.com/ceyewan/azulpay/xerrors"

var (
	// ErrConfigNil 配置为空
	ErrConfigNil = xerrors.New("secure: config is nil")

	// ErrRequesterNil 未注入网关请求器
	ErrRequesterNil = xerrors.New("secure: gateway requester is required, use WithRequester")

	// ErrStoreNil 未注入键值存储
	ErrStoreNil = xerrors.New("secure: kv store is required, use WithStore")

	// ErrSessionNotFound 会话不存在：secureId 从未创建，或交易已到
	// 终态、会话已删除。对当前请求是致命错误，不应静默重试。
	ErrSessionNotFound = xerrors.New("secure: session not found")
)
