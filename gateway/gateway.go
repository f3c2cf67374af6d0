// Package gateway 实现 Azul 支付网关的传输层协作者。
//
// 对上层只暴露一个操作：把请求体 POST 到网关并返回解析后的
// 封闭响应类型（核准 / 质询 / method / 拒绝）。连接层为双向 TLS
// （客户端证书由商户侧提供），认证通过 Auth1/Auth2 请求头完成，
// Channel 与 Store（商户号）字段由 Requester 统一注入。
//
// 网络、TLS 或 HTTP 状态码层面的失败以 *TransportError 返回，
// 本包不做任何重试 —— 重试策略属于上层（配合幂等键才安全）。
//
// ## 基本使用
//
//	requester, _ := gateway.New(&gateway.Config{
//	    Auth1:       "...",
//	    Auth2:       "...",
//	    MerchantID:  "39038540035",
//	    Certificate: certPEM,
//	    Key:         keyPEM,
//	    Environment: gateway.EnvDev,
//	}, gateway.WithLogger(logger))
//
//	resp, err := requester.Request(ctx, body, gateway.ProcessSale)
package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/xerrors"
)

// Process 网关子端点选择器
//
// 网关用 URL 查询参数区分初始交易与 3DS 续接调用。
type Process string

const (
	// ProcessSale 初始交易端点
	ProcessSale Process = ""
	// ProcessThreeDSMethod 3DS method 通知续接端点
	ProcessThreeDSMethod Process = "?ProcessThreedsMethod"
	// ProcessThreeDSChallenge 3DS 质询应答续接端点
	ProcessThreeDSChallenge Process = "?ProcessThreedsChallenge"
)

// Requester 网关请求接口
type Requester interface {
	// Request 发送一次网关调用并返回解析后的响应
	//
	// body 中的业务字段由调用方给出，Channel 与 Store 由实现注入。
	// 连接或 HTTP 层失败返回 *TransportError；网关业务层的拒绝
	// 不是错误，而是 KindRejected 响应。
	Request(ctx context.Context, body map[string]any, process Process) (*Response, error)
}

// New 创建网关请求器
func New(cfg *Config, opts ...Option) (Requester, error) {
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
		logger = logger.With(clog.String("component", "gateway"))
	}

	transport := &http.Transport{}
	if cfg.Certificate != "" && cfg.Key != "" {
		cert, err := tls.X509KeyPair([]byte(cfg.Certificate), []byte(cfg.Key))
		if err != nil {
			return nil, xerrors.Wrap(err, "gateway: failed to load client certificate")
		}
		transport.TLSClientConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	return &requester{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}, nil
}

// requester Requester 实现（非导出）
type requester struct {
	cfg    *Config
	logger clog.Logger
	client *http.Client
}

// Request 发送一次网关调用
func (r *requester) Request(ctx context.Context, body map[string]any, process Process) (*Response, error) {
	payload := make(map[string]any, len(body)+2)
	for k, v := range body {
		payload[k] = v
	}
	payload["Channel"] = r.cfg.Channel
	payload["Store"] = r.cfg.MerchantID

	requestBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, xerrors.Wrap(err, "gateway: failed to marshal request body")
	}

	url := r.cfg.url() + string(process)

	if r.logger != nil {
		r.logger.Debug("gateway request",
			clog.String("url", url),
			clog.Int("body_size", len(requestBytes)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBytes))
	if err != nil {
		return nil, xerrors.Wrap(err, "gateway: failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Auth1", r.cfg.Auth1)
	req.Header.Set("Auth2", r.cfg.Auth2)

	resp, err := r.client.Do(req)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("gateway request failed", clog.Error(err), clog.String("url", url))
		}
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		if r.logger != nil {
			r.logger.Error("gateway returned non-200 status",
				clog.Int("status", resp.StatusCode),
				clog.String("url", url))
		}
		return nil, &TransportError{
			Cause: xerrors.Wrapf(ErrBadStatus, "status %d", resp.StatusCode),
		}
	}

	if r.logger != nil {
		r.logger.Debug("gateway response",
			clog.String("url", url),
			clog.Int("body_size", len(responseBytes)))
	}

	return ParseResponse(responseBytes)
}
