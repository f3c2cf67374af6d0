// Package config 提供统一的配置加载能力，基于 Viper 实现。
//
// 支持多源加载与热更新，优先级从高到低：
//   - 环境变量（AZULPAY_ 前缀）
//   - .env 文件
//   - 环境特定配置文件（config.<env>.yaml）
//   - 基础配置文件（config.yaml）
//
// ## 基本使用
//
//	loader, _ := config.New(&config.Config{
//	    Paths:     []string{"./config"},
//	    EnvPrefix: "AZULPAY",
//	})
//	if err := loader.Load(ctx); err != nil {
//	    panic(err)
//	}
//
//	var app config.App
//	if err := loader.Unmarshal(&app); err != nil {
//	    panic(err)
//	}
package config

import (
	"context"
	"strings"
	"time"
)

// Loader 配置加载器
type Loader interface {
	// Load 从所有来源加载配置并启动文件监听
	Load(ctx context.Context) error

	// Get 获取原始配置值
	Get(key string) any

	// Unmarshal 将整个配置反序列化到结构体（按 yaml 标签绑定）
	Unmarshal(v any) error

	// UnmarshalKey 将指定 key 的配置反序列化到结构体
	UnmarshalKey(key string, v any) error

	// Watch 订阅指定 key 的变更，context 取消时停止监听并关闭通道
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Event 配置变更事件
type Event struct {
	Key       string
	Value     any
	OldValue  any
	Timestamp time.Time
}

// Config 加载器配置
type Config struct {
	// Name 配置文件名称（不含扩展名），默认 "config"
	Name string

	// Paths 配置文件搜索路径，默认 [".", "./config"]
	Paths []string

	// FileType 配置文件类型，默认 "yaml"
	FileType string

	// EnvPrefix 环境变量前缀，默认 "AZULPAY"
	// 同名环境变量 <PREFIX>_ENV 选择环境特定配置文件
	EnvPrefix string
}

func (c *Config) setDefaults() {
	if c == nil {
		return
	}
	if c.Name == "" {
		c.Name = "config"
	}
	if c.Paths == nil {
		c.Paths = []string{".", "./config"}
	}
	if c.FileType == "" {
		c.FileType = "yaml"
	}
	if c.EnvPrefix == "" {
		c.EnvPrefix = "AZULPAY"
	}
	c.EnvPrefix = strings.ToUpper(c.EnvPrefix)
}

// New 创建配置加载器
func New(cfg *Config, opts ...Option) (Loader, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()

	opt := options{}
	for _, o := range opts {
		o(&opt)
	}

	return newLoader(cfg, opt.logger), nil
}
