// Package kv 提供幂等组件与 3DS 会话共享的键值存储抽象。
//
// kv 是本库唯一的共享可变状态入口：锁记录、幂等结果与安全会话
// 全部通过同一个 Store 实例读写，因此只要多个进程指向同一个后端
// （如 Redis），整套协调逻辑在多进程部署下同样成立。
//
// ## 基本使用
//
//	// 内存后端（仅单机）
//	store, _ := kv.New(&kv.Config{Driver: kv.DriverMemory})
//
//	// Redis 后端（多进程共享）
//	store, _ := kv.New(&kv.Config{
//	    Driver: kv.DriverRedis,
//	    Prefix: "azulpay:",
//	}, kv.WithRedisConnector(redisConn), kv.WithLogger(logger))
package kv

import (
	"context"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/xerrors"
)

// ========================================
// 接口定义 (Interface Definitions)
// ========================================

// Store 键值存储接口
//
// 除 SetNX 的原子性外，不假设任何跨键顺序保证。
// 所有实现必须是并发安全的。
type Store interface {
	// Get 读取键值，键不存在时返回 ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set 写入键值，覆盖已有值
	Set(ctx context.Context, key, value string) error

	// SetNX 原子地"不存在才写入"
	// 返回 true 表示本次调用创建了该键
	SetNX(ctx context.Context, key, value string) (bool, error)

	// Delete 删除键，键不存在时不报错
	Delete(ctx context.Context, key string) error
}

// ========================================
// 工厂函数 (Factory Functions)
// ========================================

// New 创建键值存储实例
//
// 参数：
//   - cfg: 存储配置，不可为 nil
//   - opts: 可选配置，如 WithLogger()、WithRedisConnector()
func New(cfg *Config, opts ...Option) (Store, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := options{}
	for _, o := range opts {
		o(&opt)
	}

	logger := opt.logger
	if logger != nil {
		logger = logger.With(clog.String("component", "kv"))
	}

	switch cfg.Driver {
	case DriverRedis:
		if opt.redisConn == nil {
			return nil, xerrors.New("kv: redis connector is required, use WithRedisConnector")
		}
		if logger != nil {
			logger.Info("creating kv store",
				clog.String("driver", string(cfg.Driver)),
				clog.String("prefix", cfg.Prefix))
		}
		return newRedisStore(opt.redisConn, cfg.Prefix), nil
	case DriverMemory:
		if logger != nil {
			logger.Info("creating kv store",
				clog.String("driver", string(cfg.Driver)),
				clog.String("prefix", cfg.Prefix))
		}
		return newMemoryStore(cfg.Prefix), nil
	default:
		return nil, xerrors.New("kv: unsupported driver: " + string(cfg.Driver))
	}
}
