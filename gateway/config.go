package gateway

import (
	"time"

	"github.com/ceyewan/azulpay/xerrors"
)

// Environment 网关环境
type Environment string

const (
	// EnvDev 测试环境
	EnvDev Environment = "dev"
	// EnvProd 生产环境
	EnvProd Environment = "prod"
)

// 网关各环境端点
const (
	devURL  = "https://pruebas.azul.com.do/webservices/JSON/Default.aspx"
	prodURL = "https://pagos.azul.com.do/webservices/JSON/Default.aspx"
)

// Config 网关请求器配置
type Config struct {
	// Auth1 / Auth2 网关认证请求头
	Auth1 string `json:"auth1" yaml:"auth1"`
	Auth2 string `json:"auth2" yaml:"auth2"`

	// MerchantID 商户号，作为 Store 字段注入每个请求体
	MerchantID string `json:"merchant_id" yaml:"merchant_id"`

	// Channel 支付渠道，默认 "EC"（电子商务）
	Channel string `json:"channel" yaml:"channel"`

	// Environment 目标环境: "dev" | "prod"，默认 "dev"
	Environment Environment `json:"environment" yaml:"environment"`

	// URL 覆盖环境端点，主要用于测试
	URL string `json:"url" yaml:"url"`

	// Certificate / Key 双向 TLS 客户端证书与私钥（PEM 内容）
	// 二者均为空时不配置客户端证书（仅用于测试）
	Certificate string `json:"certificate" yaml:"certificate"`
	Key         string `json:"key" yaml:"key"`

	// Timeout 单次请求超时，默认 30s
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

func (c *Config) setDefaults() {
	if c == nil {
		return
	}
	if c.Channel == "" {
		c.Channel = "EC"
	}
	if c.Environment == "" {
		c.Environment = EnvDev
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

func (c *Config) validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if c.MerchantID == "" {
		return xerrors.New("gateway: merchant id is required")
	}
	switch c.Environment {
	case EnvDev, EnvProd:
	default:
		return xerrors.New("gateway: unsupported environment: " + string(c.Environment))
	}
	if (c.Certificate == "") != (c.Key == "") {
		return xerrors.New("gateway: certificate and key must be provided together")
	}
	return nil
}

// url 返回生效的端点地址
func (c *Config) url() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Environment == EnvProd {
		return prodURL
	}
	return devURL
}
