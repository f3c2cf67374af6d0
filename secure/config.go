package secure

import (
	"time"

	"github.com/ceyewan/azulpay/xerrors"
)

// Config 3DS 编排器配置
type Config struct {
	// MethodURL 接收 ACS method 通知的回调地址
	// 编排器会在其后追加 secureId 查询参数用于关联会话
	MethodURL string `json:"method_url" yaml:"method_url"`

	// ChallengeURL 接收质询应答（CRes）的回调地址（TermUrl）
	ChallengeURL string `json:"challenge_url" yaml:"challenge_url"`

	// MethodTimeout 等待 ACS method 通知的窗口，默认 10s
	// 窗口内未等到通知时，以 EXPECTED_BUT_NOT_RECEIVED 状态调用网关。
	// 注意这与幂等锁超时（LockTimeout）是两个独立的超时域：
	// 本窗口决定发给网关的状态值，锁超时约束重复调用方的等待时长
	MethodTimeout time.Duration `json:"method_timeout" yaml:"method_timeout"`

	// LockTimeout 幂等锁超时，默认 120s
	LockTimeout time.Duration `json:"lock_timeout" yaml:"lock_timeout"`

	// PollInterval 等待 method 结果与锁的轮询间隔，默认 100ms
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`

	// UseIframe 为 true 时保留 method 表单的 target 属性
	// （在 iframe 中渲染）；否则剥除
	UseIframe bool `json:"use_iframe" yaml:"use_iframe"`
}

func (c *Config) setDefaults() {
	if c == nil {
		return
	}
	if c.MethodTimeout <= 0 {
		c.MethodTimeout = 10 * time.Second
	}
	if c.LockTimeout <= 0 {
		c.LockTimeout = 120 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 100 * time.Millisecond
	}
}

func (c *Config) validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if c.MethodURL == "" {
		return xerrors.New("secure: method url is required")
	}
	if c.ChallengeURL == "" {
		return xerrors.New("secure: challenge url is required")
	}
	return nil
}
