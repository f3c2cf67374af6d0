package kv

import "github.com/ceyewan/azulpay/xerrors"

// 错误定义
var (
	// ErrConfigNil 配置为空
	ErrConfigNil = xerrors.New("kv: config is nil")

	// ErrKeyNotFound 键不存在
	ErrKeyNotFound = xerrors.New("kv: key not found")
)
