package kv

import "github.com/ceyewan/azulpay/xerrors"

// DriverType 存储驱动类型
type DriverType string

const (
	// DriverRedis 使用 Redis 作为后端
	DriverRedis DriverType = "redis"
	// DriverMemory 使用内存作为后端（仅单机）
	DriverMemory DriverType = "memory"
)

// Config 键值存储配置
type Config struct {
	// Driver 后端类型: "redis" | "memory" (默认 "memory")
	Driver DriverType `json:"driver" yaml:"driver"`

	// Prefix 所有键的全局前缀，例如 "azulpay:"
	// 锁、幂等结果与会话在此前缀下再按各自命名空间区分
	Prefix string `json:"prefix" yaml:"prefix"`
}

func (c *Config) setDefaults() {
	if c == nil {
		return
	}
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
}

func (c *Config) validate() error {
	if c == nil {
		return ErrConfigNil
	}
	switch c.Driver {
	case DriverRedis, DriverMemory:
		return nil
	default:
		return xerrors.New("kv: unsupported driver: " + string(c.Driver))
	}
}
