package idem

import "github.com/ceyewan/azulpay/xerrors"

// 错误定义
var (
	// ErrConfigNil 配置为空
	ErrConfigNil = xerrors.New("idem: config is nil")

	// ErrStoreNil 未注入键值存储
	ErrStoreNil = xerrors.New("idem: kv store is required, use WithStore")

	// ErrKeyEmpty 幂等键为空
	ErrKeyEmpty = xerrors.New("idem: key is empty")

	// ErrResultNotFound 结果未找到
	ErrResultNotFound = xerrors.New("idem: result not found")
)
