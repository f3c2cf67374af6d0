package idem

import (
	"context"
	"encoding/json"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/dlock"
	"github.com/ceyewan/azulpay/kv"
	"github.com/ceyewan/azulpay/xerrors"
)

// guard 幂等性组件实现（非导出）
type guard struct {
	cfg    *Config
	store  kv.Store
	locker dlock.Locker
	logger clog.Logger
}

// Execute 执行幂等操作
func (g *guard) Execute(ctx context.Context, key string, fn func(ctx context.Context) (any, error), opts ...ExecuteOption) (json.RawMessage, error) {
	if key == "" {
		return nil, ErrKeyEmpty
	}

	execOpt := executeOptions{lockTimeout: g.cfg.LockTimeout}
	for _, o := range opts {
		o(&execOpt)
	}

	// 第一次检查：已有结果直接返回，无需加锁
	cached, err := g.Lookup(ctx, key)
	if err == nil {
		if g.logger != nil {
			g.logger.Debug("idem cache hit", clog.String("key", key))
		}
		return cached, nil
	}
	if err != ErrResultNotFound {
		return nil, err
	}

	if err := g.locker.Acquire(ctx, key, execOpt.lockTimeout); err != nil {
		if g.logger != nil {
			g.logger.Debug("failed to acquire idem lock", clog.Error(err), clog.String("key", key))
		}
		// dlock.ErrAcquireTimeout 原样传播，调用方可自行重试
		return nil, err
	}

	return g.runLocked(ctx, key, fn)
}

// runLocked 持锁执行操作并落盘结果
//
// 释放锁放在 defer 中：无论正常返回、出错还是 fn panic，锁都会被
// 释放，键不会被永久污染。落盘在函数体内、释放在 defer 中，
// "先持久化、再释放"的顺序天然成立。结果已落盘后释放失败时，
// result 与 error 同时返回 —— 操作本身已经成功并缓存。
func (g *guard) runLocked(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (result json.RawMessage, err error) {
	defer func() {
		if rErr := g.locker.Release(ctx, key); rErr != nil {
			err = xerrors.Combine(err, rErr)
		}
	}()

	// 第二次检查：竞争者可能已在加锁间隙完成并落盘
	cached, lookupErr := g.Lookup(ctx, key)
	if lookupErr == nil {
		if g.logger != nil {
			g.logger.Debug("idem cache hit after lock", clog.String("key", key))
		}
		return cached, nil
	}
	if lookupErr != ErrResultNotFound {
		return nil, lookupErr
	}

	out, fnErr := fn(ctx)
	if fnErr != nil {
		if g.logger != nil {
			g.logger.Error("idem execution failed", clog.Error(fnErr), clog.String("key", key))
		}
		// 失败不落盘：原样传播，后续调用会重新执行
		return nil, fnErr
	}

	resultBytes, marshalErr := json.Marshal(out)
	if marshalErr != nil {
		return nil, xerrors.Wrap(marshalErr, "idem: failed to marshal result")
	}

	if setErr := g.store.Set(ctx, g.cfg.Prefix+key, string(resultBytes)); setErr != nil {
		return nil, xerrors.Wrap(setErr, "idem: failed to persist result")
	}

	if g.logger != nil {
		g.logger.Debug("idem execution completed and cached", clog.String("key", key))
	}
	return json.RawMessage(resultBytes), nil
}

// Lookup 只读查询已缓存的结果
func (g *guard) Lookup(ctx context.Context, key string) (json.RawMessage, error) {
	if key == "" {
		return nil, ErrKeyEmpty
	}

	value, err := g.store.Get(ctx, g.cfg.Prefix+key)
	if err == kv.ErrKeyNotFound {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, xerrors.Wrap(err, "idem: failed to get cached result")
	}

	return json.RawMessage(value), nil
}
