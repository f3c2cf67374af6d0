package dlock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/kv"
	"github.com/ceyewan/azulpay/xerrors"
)

// kvLocker 基于 kv.Store 的锁实现（非导出）
//
// 锁不可重入：同一进程内对已持有的 key 再次 Acquire 会一直
// 轮询到超时。
type kvLocker struct {
	cfg    *Config
	store  kv.Store
	logger clog.Logger

	mu     sync.Mutex
	tokens map[string]string // key -> 本方持有者令牌
}

func newKVLocker(cfg *Config, store kv.Store, logger clog.Logger) Locker {
	if logger != nil {
		logger = logger.With(clog.String("component", "dlock"))
	}
	return &kvLocker{
		cfg:    cfg,
		store:  store,
		logger: logger,
		tokens: make(map[string]string),
	}
}

// Acquire 阻塞式加锁
func (l *kvLocker) Acquire(ctx context.Context, key string, timeout time.Duration) error {
	token := uuid.New().String()
	deadline := time.Now().Add(timeout)
	lockKey := l.cfg.Prefix + key

	for {
		_, err := l.store.Get(ctx, lockKey)
		if err == kv.ErrKeyNotFound {
			// 键不存在，尝试原子创建；失败说明有竞争者抢先，继续轮询
			created, err := l.store.SetNX(ctx, lockKey, token)
			if err != nil {
				return xerrors.Wrap(err, "dlock: failed to create lock record")
			}
			if created {
				l.mu.Lock()
				l.tokens[key] = token
				l.mu.Unlock()

				if l.logger != nil {
					l.logger.Debug("lock acquired", clog.String("key", key))
				}
				return nil
			}
		} else if err != nil {
			return xerrors.Wrap(err, "dlock: failed to read lock record")
		}

		if time.Now().After(deadline) {
			if l.logger != nil {
				l.logger.Debug("lock acquisition timed out",
					clog.String("key", key),
					clog.Duration("timeout", timeout))
			}
			return ErrAcquireTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.cfg.PollInterval):
		}
	}
}

// Release 释放锁
//
// 本地令牌只在存储记录确认删除（或确认所有权已丢失）后才清除：
// 存储瞬时故障时令牌保留，调用方可以重试释放。
func (l *kvLocker) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	token, held := l.tokens[key]
	l.mu.Unlock()

	if !held {
		return ErrLockNotHeld
	}

	lockKey := l.cfg.Prefix + key

	current, err := l.store.Get(ctx, lockKey)
	if err == kv.ErrKeyNotFound {
		l.forget(key)
		return ErrNotOwner
	}
	if err != nil {
		return xerrors.Wrap(err, "dlock: failed to read lock record")
	}
	if current != token {
		if l.logger != nil {
			l.logger.Error("lock owner mismatch on release", clog.String("key", key))
		}
		l.forget(key)
		return ErrNotOwner
	}

	if err := l.store.Delete(ctx, lockKey); err != nil {
		return xerrors.Wrap(err, "dlock: failed to delete lock record")
	}
	l.forget(key)

	if l.logger != nil {
		l.logger.Debug("lock released", clog.String("key", key))
	}
	return nil
}

func (l *kvLocker) forget(key string) {
	l.mu.Lock()
	delete(l.tokens, key)
	l.mu.Unlock()
}
