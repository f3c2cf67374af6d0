package connector

import (
	"time"

	"github.com/ceyewan/azulpay/xerrors"
)

// RedisConfig Redis 连接配置
type RedisConfig struct {
	// Name 连接实例名称，用于日志与多实例区分
	Name string `json:"name" yaml:"name"`

	// Addr Redis 地址，格式 host:port
	Addr string `json:"addr" yaml:"addr"`

	// Password 密码，可为空
	Password string `json:"password" yaml:"password"`

	// DB 数据库编号
	DB int `json:"db" yaml:"db"`

	// PoolSize 连接池大小
	PoolSize int `json:"pool_size" yaml:"pool_size"`

	// MinIdleConns 最小空闲连接数
	MinIdleConns int `json:"min_idle_conns" yaml:"min_idle_conns"`

	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

func (c *RedisConfig) setDefaults() {
	if c == nil {
		return
	}
	if c.Name == "" {
		c.Name = "default"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 3 * time.Second
	}
}

func (c *RedisConfig) validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if c.Addr == "" {
		return xerrors.New("connector: redis addr is required")
	}
	return nil
}
