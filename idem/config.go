package idem

import "time"

// Config 幂等性组件配置
type Config struct {
	// Prefix 结果缓存的键命名空间，默认 "payments-cache:"
	Prefix string `json:"prefix" yaml:"prefix"`

	// LockPrefix 锁记录的键命名空间，默认 "payments-locks:"
	LockPrefix string `json:"lock_prefix" yaml:"lock_prefix"`

	// LockTimeout 获取锁的默认超时，默认 120s
	// 约束的是重复调用方等待首个调用方完成网关往返的时长，
	// 与 3DS method 通知的 10s 等待窗口是两个独立的超时域
	LockTimeout time.Duration `json:"lock_timeout" yaml:"lock_timeout"`

	// PollInterval 锁轮询间隔，默认 100ms
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`
}

func (c *Config) setDefaults() {
	if c == nil {
		return
	}
	if c.Prefix == "" {
		c.Prefix = "payments-cache:"
	}
	if c.LockPrefix == "" {
		c.LockPrefix = "payments-locks:"
	}
	if c.LockTimeout <= 0 {
		c.LockTimeout = 120 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 100 * time.Millisecond
	}
}
