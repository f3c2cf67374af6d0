// Package idem 提供幂等性组件，确保非幂等远程操作按逻辑键"至多
// 成功执行一次"。
//
// 算法是跨进程版的双重检查锁：
//  1. 查结果缓存，命中直接返回（无需加锁，不会重复执行）
//  2. 未命中则按幂等键获取分布式锁，超时返回 dlock.ErrAcquireTimeout
//  3. 持锁后复查缓存（竞争者可能已在加锁间隙完成并落盘）
//  4. 仍未命中才执行操作；成功时先持久化序列化结果、再释放锁
//  5. 失败时释放锁并原样传播错误 —— 失败不落盘，后续调用会重新执行
//
// 锁的释放在 defer 中完成：操作 panic 时锁同样被释放、panic 原样
// 向上传播，键不会被永久污染。
//
// 不变量：对同一个幂等键，外部系统至多观察到一次成功执行；所有拿到
// 成功结果的调用方看到字节一致的序列化输出；失败永远可重试，不会把
// 键永久污染。
//
// ## 基本使用
//
//	guard, _ := idem.New(&idem.Config{
//	    Prefix:      "payments-cache:",
//	    LockTimeout: 120 * time.Second,
//	}, idem.WithStore(store), idem.WithLogger(logger))
//
//	raw, err := guard.Execute(ctx, "process-method:"+secureID, func(ctx context.Context) (any, error) {
//	    return gateway.Request(ctx, body) // 只会真正执行一次
//	})
//
// 需要类型化结果时使用泛型包装：
//
//	result, err := idem.Call(ctx, guard, key, input, doRemoteCall)
package idem

import (
	"context"
	"encoding/json"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/dlock"
)

// ========================================
// 接口定义 (Interface Definitions)
// ========================================

// Guard 幂等性组件核心接口
type Guard interface {
	// Execute 执行幂等操作
	//
	// 返回 fn 成功结果的 JSON 序列化形式：首个完成者与所有后续
	// 调用方（无论并发还是先后）拿到的字节完全一致。
	//
	// 已知局限：fn 在远端成功后、结果持久化前进程崩溃，副作用已
	// 发生但没有记录，重试会再次执行 fn 并可能产生重复的远端事务。
	// 这是纯客户端幂等的固有缺口，只有网关侧幂等键才能闭合；
	// 调用方在定超时与重试策略时应知晓这一点。
	//
	// 错误：
	//   - ErrKeyEmpty: key 为空
	//   - dlock.ErrAcquireTimeout: 锁竞争超时，可安全重试
	//   - fn 的错误原样传播（释放锁失败时用 xerrors.Combine 合并）
	//   - fn panic 时锁先被释放、panic 原样向上传播
	//   - 结果已落盘后释放锁失败时，结果与释放错误同时返回：
	//     操作本身已经成功并缓存，调用方不应据此重试
	Execute(ctx context.Context, key string, fn func(ctx context.Context) (any, error), opts ...ExecuteOption) (json.RawMessage, error)

	// Lookup 只读查询已缓存的结果
	//
	// 结果不存在时返回 ErrResultNotFound，不会触发执行。
	// 供上层在不愿加锁的场景（如 3DS method 等待窗口）轮询使用。
	Lookup(ctx context.Context, key string) (json.RawMessage, error)
}

// ========================================
// 工厂函数 (Factory Functions)
// ========================================

// New 创建幂等性组件实例
//
// 锁与结果缓存落在同一个注入的 kv.Store 上，保证多进程部署下
// 协调行为一致。
//
// 参数：
//   - cfg: 幂等性配置，不可为 nil
//   - opts: 可选配置，WithStore() 为必填项
func New(cfg *Config, opts ...Option) (Guard, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	cfg.setDefaults()

	opt := options{}
	for _, o := range opts {
		o(&opt)
	}
	if opt.store == nil {
		return nil, ErrStoreNil
	}

	logger := opt.logger
	if logger != nil {
		logger = logger.With(clog.String("component", "idem"))
	}

	locker, err := dlock.New(&dlock.Config{
		Prefix:       cfg.LockPrefix,
		PollInterval: cfg.PollInterval,
	}, dlock.WithStore(opt.store), dlock.WithLogger(opt.logger))
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("creating idem guard",
			clog.String("prefix", cfg.Prefix),
			clog.Duration("lock_timeout", cfg.LockTimeout),
			clog.Duration("poll_interval", cfg.PollInterval))
	}

	return &guard{
		cfg:    cfg,
		store:  opt.store,
		locker: locker,
		logger: logger,
	}, nil
}
