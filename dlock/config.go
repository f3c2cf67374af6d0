package dlock

import "time"

// Config 组件静态配置
type Config struct {
	// Prefix 锁记录的键命名空间，默认 "payments-locks:"
	Prefix string `json:"prefix" yaml:"prefix"`

	// PollInterval 加锁轮询间隔，默认 100ms
	// 直接权衡加锁延迟与存储负载，按部署情况调整
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`
}

func (c *Config) setDefaults() {
	if c == nil {
		return
	}
	if c.Prefix == "" {
		c.Prefix = "payments-locks:"
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 100 * time.Millisecond
	}
}
