package config

import (
	"context"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/connector"
	"github.com/ceyewan/azulpay/gateway"
	"github.com/ceyewan/azulpay/kv"
	"github.com/ceyewan/azulpay/secure"
)

// App 完整应用配置
//
// 把各组件的 Config 聚合到一份配置文件里，对应的 YAML 结构：
//
//	log:
//	  level: info
//	  format: json
//	kv:
//	  driver: redis
//	  prefix: "azulpay:"
//	redis:
//	  addr: localhost:6379
//	gateway:
//	  merchant_id: "39038540035"
//	  environment: dev
//	secure:
//	  method_url: https://merchant.example.com/webhooks/method
//	  challenge_url: https://merchant.example.com/webhooks/challenge
type App struct {
	Log     clog.Config           `yaml:"log"`
	KV      kv.Config             `yaml:"kv"`
	Redis   connector.RedisConfig `yaml:"redis"`
	Gateway gateway.Config        `yaml:"gateway"`
	Secure  secure.Config         `yaml:"secure"`
}

// LoadApp 一步加载完整应用配置
func LoadApp(ctx context.Context, cfg *Config, opts ...Option) (*App, error) {
	loader, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := loader.Load(ctx); err != nil {
		return nil, err
	}

	var app App
	if err := loader.Unmarshal(&app); err != nil {
		return nil, err
	}
	return &app, nil
}
