package testkit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	rediscontainer "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/ceyewan/azulpay/connector"
)

// GetRedisConfig 返回 Redis 测试配置
// 默认连接 localhost:6379
func GetRedisConfig() *connector.RedisConfig {
	return &connector.RedisConfig{
		Name:         "test-redis",
		Addr:         "localhost:6379",
		DB:           1, // 使用 DB 1 避免与默认的 DB 0 冲突
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// GetRedisConnector 获取 Redis 连接器，要求本机已有 Redis 实例
// 生命周期由 t.Cleanup 管理
func GetRedisConnector(t *testing.T) connector.RedisConnector {
	return connectRedis(t, GetRedisConfig())
}

// NewRedisContainerConfig 使用 testcontainers 创建 Redis 容器并返回配置
// 生命周期由 t.Cleanup 管理
func NewRedisContainerConfig(t *testing.T) *connector.RedisConfig {
	ctx := context.Background()

	container, err := rediscontainer.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start Redis container")

	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := GetRedisConfig()
	cfg.Name = "testcontainer-redis"
	cfg.Addr = strings.TrimPrefix(endpoint, "redis://")
	cfg.DB = 0
	return cfg
}

// NewRedisContainerConnector 使用 testcontainers 创建并连接 Redis 连接器
// 生命周期由 t.Cleanup 管理
func NewRedisContainerConnector(t *testing.T) connector.RedisConnector {
	return connectRedis(t, NewRedisContainerConfig(t))
}

func connectRedis(t *testing.T, cfg *connector.RedisConfig) connector.RedisConnector {
	conn, err := connector.NewRedis(cfg, connector.WithLogger(NewLogger()))
	require.NoError(t, err, "failed to create redis connector")

	err = conn.Connect(context.Background())
	require.NoError(t, err, "failed to connect to redis")

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

// GetRedisClient 获取原生 Redis 客户端
func GetRedisClient(t *testing.T) *redis.Client {
	return GetRedisConnector(t).GetClient()
}

// FlushRedis 清空 Redis 数据库（慎用！）
func FlushRedis(t *testing.T, client *redis.Client) {
	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
}
