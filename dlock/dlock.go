// Package dlock 提供基于键值存储的分布式互斥锁。
//
// 锁记录通过 kv.Store 的原子 SetNX 创建，以每次获取时生成的随机
// 令牌作为持有者凭证。获取是轮询自旋（默认 100ms 间隔）而非排队，
// 等待者之间没有公平性保证 —— 对幂等调用这种相互独立的竞争者来说
// 这是可接受的取舍。
//
// 只要多个进程共享同一个 kv 后端（如 Redis），互斥在跨进程部署下
// 同样成立。
//
// ## 基本使用
//
//	locker, _ := dlock.New(&dlock.Config{}, dlock.WithStore(store))
//
//	if err := locker.Acquire(ctx, "order:123", 30*time.Second); err != nil {
//	    return err // dlock.ErrAcquireTimeout 表示竞争超时，可安全重试
//	}
//	defer locker.Release(ctx, "order:123")
package dlock

import (
	"context"
	"time"
)

// Locker 定义了分布式锁的核心行为
type Locker interface {
	// Acquire 阻塞式加锁
	//
	// 轮询直到持有 key 的独占所有权，或 timeout 耗尽后返回
	// ErrAcquireTimeout。ctx 取消时返回 ctx.Err()。
	Acquire(ctx context.Context, key string, timeout time.Duration) error

	// Release 释放锁
	//
	// 只有锁的持有者才能成功释放：存储中的持有者令牌与本方令牌
	// 不一致时返回 ErrNotOwner。该错误指示超时配置或逻辑缺陷，
	// 调用方不应静默吞掉。
	Release(ctx context.Context, key string) error
}

// New 创建分布式锁实例
//
// 这是标准的工厂函数，锁状态完全存放在注入的 kv.Store 中，
// 不依赖任何全局状态。
//
// 参数:
//   - cfg: 锁配置，nil 时使用默认值
//   - opts: 可选参数，WithStore() 为必填项
//
// 使用示例:
//
//	locker, _ := dlock.New(&dlock.Config{
//	    Prefix:       "payments-locks:",
//	    PollInterval: 100 * time.Millisecond,
//	}, dlock.WithStore(store), dlock.WithLogger(logger))
func New(cfg *Config, opts ...Option) (Locker, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()

	opt := options{}
	for _, o := range opts {
		o(&opt)
	}
	if opt.store == nil {
		return nil, ErrStoreNil
	}

	return newKVLocker(cfg, opt.store, opt.logger), nil
}
