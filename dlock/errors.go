package dlock

import "github.com/ceyewan/azulpay/xerrors"

var (
	// ErrStoreNil 未注入键值存储
	ErrStoreNil = xerrors.New("dlock: kv store is required, use WithStore")

	// ErrAcquireTimeout 在超时时间内未能获取锁
	// 属于正常的竞争结果，调用方可带退避重试
	ErrAcquireTimeout = xerrors.New("dlock: failed to acquire lock within timeout")

	// ErrLockNotHeld 本地未持有该锁
	ErrLockNotHeld = xerrors.New("dlock: lock not held")

	// ErrNotOwner 存储中的持有者令牌与本方不一致
	// 指示锁被其他持有者重建或释放逻辑存在缺陷
	ErrNotOwner = xerrors.New("dlock: lock held by another owner")
)
