package kv

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/ceyewan/azulpay/connector"
	"github.com/ceyewan/azulpay/xerrors"
)

// redisStore Redis 存储实现（非导出）
//
// 不设置 TTL：锁记录与会话由上层显式删除，幂等结果的过期策略
// 属于存储后端的运维配置，不属于本库（可通过 Redis 的
// maxmemory-policy 或外部清理任务处理）。
type redisStore struct {
	client connector.RedisConnector
	prefix string
}

// newRedisStore 创建 Redis 存储实例（内部函数）
func newRedisStore(redisConn connector.RedisConnector, prefix string) Store {
	return &redisStore{
		client: redisConn,
		prefix: prefix,
	}
}

func (rs *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := rs.client.GetClient().Get(ctx, rs.prefix+key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", xerrors.Wrap(err, "kv: failed to get key")
	}
	return value, nil
}

func (rs *redisStore) Set(ctx context.Context, key, value string) error {
	if err := rs.client.GetClient().Set(ctx, rs.prefix+key, value, 0).Err(); err != nil {
		return xerrors.Wrap(err, "kv: failed to set key")
	}
	return nil
}

func (rs *redisStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	created, err := rs.client.GetClient().SetNX(ctx, rs.prefix+key, value, 0).Result()
	if err != nil {
		return false, xerrors.Wrap(err, "kv: failed to setnx key")
	}
	return created, nil
}

func (rs *redisStore) Delete(ctx context.Context, key string) error {
	if err := rs.client.GetClient().Del(ctx, rs.prefix+key).Err(); err != nil {
		return xerrors.Wrap(err, "kv: failed to delete key")
	}
	return nil
}
