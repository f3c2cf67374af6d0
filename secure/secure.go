// Package secure 实现 Azul 3-D Secure 认证会话编排。
//
// 协议是"初始交易 → 可选的浏览器 method 步骤 → 可选的质询步骤 →
// 终态结果"的多步异步流程。两个异步续接步骤（method 通知与质询
// 应答）既可能由发卡行 webhook 触发、也可能由客户端轮询触发，且
// 下游网关调用不可重复 —— 因此都经由幂等组件按 "步骤名 + secureId"
// 的键收口，重复投递与首个投递的结果不可区分，不会产生重复扣款。
//
// ## 基本使用
//
//	sec, _ := secure.New(&secure.Config{
//	    MethodURL:    "https://merchant.example.com/webhooks/method",
//	    ChallengeURL: "https://merchant.example.com/webhooks/challenge",
//	}, secure.WithRequester(requester), secure.WithStore(store))
//
//	result, err := sec.Sale(ctx, secure.SaleInput{
//	    Payment: map[string]any{"CardNumber": "...", "Amount": "1000"},
//	})
//	if result.Pending() {
//	    // 把 result.Form 投递给持卡人浏览器
//	}
package secure

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ceyewan/azulpay/clog"
	"github.com/ceyewan/azulpay/gateway"
	"github.com/ceyewan/azulpay/idem"
)

// 幂等键的步骤前缀：method 等待超时路径与 webhook 路径共用同一个键，
// 保证竞争双方只有一方真正触达网关
const (
	methodKeyPrefix    = "process-method:"
	challengeKeyPrefix = "process-challenge:"
)

// SaleInput 初始交易输入
type SaleInput struct {
	// Payment 交易业务字段（卡号、金额、CVC 等），结构校验属于
	// 上层 schema 层，不在本库范围
	Payment map[string]any

	// ChallengeIndicator 质询偏好，空值时不发送该字段
	ChallengeIndicator ChallengeIndicator

	// ForceNo3DS 为 true 时要求网关跳过 3DS
	ForceNo3DS bool
}

// Secure 3DS 编排器
//
// 会话生命周期（创建 / 删除）由本类型独占管理；幂等结果缓存由
// idem.Guard 独占管理；锁只保护临界区，不拥有任何业务数据。
type Secure struct {
	cfg       *Config
	requester gateway.Requester
	sessions  *SessionStore
	guard     idem.Guard
	logger    clog.Logger
}

// New 创建 3DS 编排器
//
// 会话与幂等状态都落在注入的 kv.Store 上：多个编排器实例（或多个
// 进程）共享同一个后端时，webhook 可以路由到任意实例。
func New(cfg *Config, opts ...Option) (*Secure, error) {
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
	if opt.requester == nil {
		return nil, ErrRequesterNil
	}
	if opt.store == nil {
		return nil, ErrStoreNil
	}

	logger := opt.logger
	if logger != nil {
		logger = logger.With(clog.String("component", "secure"))
	}

	guard := opt.guard
	if guard == nil {
		var err error
		guard, err = idem.New(&idem.Config{
			LockTimeout:  cfg.LockTimeout,
			PollInterval: cfg.PollInterval,
		}, idem.WithStore(opt.store), idem.WithLogger(opt.logger))
		if err != nil {
			return nil, err
		}
	}

	return &Secure{
		cfg:       cfg,
		requester: opt.requester,
		sessions:  NewSessionStore(opt.store),
		guard:     guard,
		logger:    logger,
	}, nil
}

// Sale 发起 3DS 交易
//
// 为本次尝试铸造 secureId，把它作为查询参数织入两个回调地址后
// 调用网关。这是唯一的发起调用，调用方没有天然的重试键，因此
// 不经过幂等组件。
//
// 根据网关响应分支：
//   - 核准 / 拒绝：直接返回终态，不持久化会话
//   - 质询：持久化会话，返回携带自提交质询表单的中间态
//   - method：持久化会话，返回携带发卡行 method 表单的中间态
func (s *Secure) Sale(ctx context.Context, input SaleInput) (*Result, error) {
	secureID := uuid.New().String()

	termURL := appendSecureID(s.cfg.ChallengeURL, secureID)
	methodURL := appendSecureID(s.cfg.MethodURL, secureID)

	body := make(map[string]any, len(input.Payment)+3)
	for k, v := range input.Payment {
		body[k] = v
	}
	body["TrxType"] = "Sale"
	if input.ForceNo3DS {
		body["ForceNo3DS"] = "1"
	} else {
		body["ForceNo3DS"] = "0"
	}

	threeDSAuth := map[string]any{
		"TermUrl":               termURL,
		"MethodNotificationUrl": methodURL,
	}
	if input.ChallengeIndicator != "" {
		threeDSAuth["RequestorChallengeIndicator"] = string(input.ChallengeIndicator)
	}
	body["ThreeDSAuth"] = threeDSAuth

	resp, err := s.requester.Request(ctx, body, gateway.ProcessSale)
	if err != nil {
		return nil, err
	}

	switch resp.Kind {
	case gateway.KindChallenge:
		session := &Session{
			AzulOrderID:           resp.AzulOrderID,
			TermURL:               termURL,
			MethodNotificationURL: methodURL,
		}
		if err := s.sessions.Put(ctx, secureID, session); err != nil {
			return nil, err
		}

		form, err := challengeForm(resp.Challenge.RedirectPostURL, resp.Challenge.CReq, termURL)
		if err != nil {
			return nil, err
		}

		if s.logger != nil {
			s.logger.Info("3ds sale requires challenge",
				clog.String("secure_id", secureID),
				clog.String("azul_order_id", resp.AzulOrderID))
		}
		return &Result{Status: StatusChallengePending, SecureID: secureID, Form: form}, nil

	case gateway.KindMethod:
		session := &Session{
			AzulOrderID:           resp.AzulOrderID,
			TermURL:               termURL,
			MethodNotificationURL: methodURL,
		}
		if err := s.sessions.Put(ctx, secureID, session); err != nil {
			return nil, err
		}

		if s.logger != nil {
			s.logger.Info("3ds sale requires method step",
				clog.String("secure_id", secureID),
				clog.String("azul_order_id", resp.AzulOrderID))
		}
		return &Result{
			Status:   StatusMethodPending,
			SecureID: secureID,
			Form:     methodForm(resp.Method.MethodForm, s.cfg.UseIframe),
		}, nil

	default:
		if s.logger != nil {
			s.logger.Info("3ds sale reached terminal state immediately",
				clog.String("secure_id", secureID),
				clog.String("kind", string(resp.Kind)))
		}
		return &Result{Status: statusOf(resp), SecureID: secureID, Response: resp}, nil
	}
}

// ProcessMethod 处理 ACS 的 method 通知
//
// webhook 与客户端轮询可能并发到达；经由 "process-method:<secureId>"
// 幂等键收口后，网关只会被触达一次，所有调用方观察到相同结果。
// 会话不存在时返回 ErrSessionNotFound —— 可能从未存在，也可能交易
// 已完成、会话已删除，对当前请求都是致命的。
func (s *Secure) ProcessMethod(ctx context.Context, secureID string) (*Result, error) {
	return s.processMethod(ctx, secureID, MethodReceived)
}

// CaptureMethod 获取 method 步骤的结果，容忍通知缺席
//
// ACS 的异步通知可能永远不来。本方法最多等待 MethodTimeout
// （默认 10s）：窗口内 webhook 落地则直接复用其结果；窗口耗尽则以
// EXPECTED_BUT_NOT_RECEIVED 状态调用网关，让流程在没有浏览器信号
// 的情况下继续。两条路径共用同一个幂等键，竞争双方只有一方真正
// 触达网关。
func (s *Secure) CaptureMethod(ctx context.Context, secureID string) (*Result, error) {
	deadline := time.Now().Add(s.cfg.MethodTimeout)
	key := methodKeyPrefix + secureID

	for first := true; ; first = false {
		raw, err := s.guard.Lookup(ctx, key)
		if err == nil {
			var resp gateway.Response
			if err := unmarshalResponse(raw, &resp); err != nil {
				return nil, err
			}
			return s.settleMethod(ctx, secureID, &resp)
		}
		if err != idem.ErrResultNotFound {
			return nil, err
		}

		// 结果未落地时会话必须仍然存在；只查一次，避免对从未存在的
		// secureId 空等整个窗口
		if first {
			if _, err := s.sessions.Get(ctx, secureID); err != nil {
				return nil, err
			}
		}

		if time.Now().After(deadline) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.cfg.PollInterval):
		}
	}

	if s.logger != nil {
		s.logger.Warn("method notification window expired",
			clog.String("secure_id", secureID),
			clog.Duration("window", s.cfg.MethodTimeout))
	}
	return s.processMethod(ctx, secureID, MethodExpectedButNotReceived)
}

// processMethod 以给定通知状态执行 method 续接调用
func (s *Secure) processMethod(ctx context.Context, secureID string, status MethodNotificationStatus) (*Result, error) {
	session, err := s.sessions.Get(ctx, secureID)
	if err != nil {
		return nil, err
	}

	resp, err := idem.Call(ctx, s.guard, methodKeyPrefix+secureID, status,
		func(ctx context.Context, status MethodNotificationStatus) (*gateway.Response, error) {
			return s.requester.Request(ctx, map[string]any{
				"AzulOrderId":              session.AzulOrderID,
				"MethodNotificationStatus": string(status),
			}, gateway.ProcessThreeDSMethod)
		})
	if err != nil {
		return nil, err
	}

	return s.settleMethod(ctx, secureID, resp)
}

// settleMethod 根据 method 结果推进会话
//
// 结果仍是质询时保留会话并生成新的质询表单；到达终态则删除会话。
func (s *Secure) settleMethod(ctx context.Context, secureID string, resp *gateway.Response) (*Result, error) {
	if resp.Kind == gateway.KindChallenge {
		session, err := s.sessions.Get(ctx, secureID)
		if err != nil {
			return nil, err
		}
		form, err := challengeForm(resp.Challenge.RedirectPostURL, resp.Challenge.CReq, session.TermURL)
		if err != nil {
			return nil, err
		}
		return &Result{Status: StatusChallengePending, SecureID: secureID, Form: form}, nil
	}

	if err := s.sessions.Remove(ctx, secureID); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("3ds method step reached terminal state",
			clog.String("secure_id", secureID),
			clog.String("kind", string(resp.Kind)))
	}
	return &Result{Status: statusOf(resp), SecureID: secureID, Response: resp}, nil
}

// ProcessChallenge 处理持卡人的质询应答（CRes）
//
// 经由 "process-challenge:<secureId>" 幂等键收口；终态时删除会话，
// 此后同一 secureId 的再次调用返回 ErrSessionNotFound。
func (s *Secure) ProcessChallenge(ctx context.Context, secureID, cRes string) (*Result, error) {
	session, err := s.sessions.Get(ctx, secureID)
	if err != nil {
		return nil, err
	}

	resp, err := idem.Call(ctx, s.guard, challengeKeyPrefix+secureID, cRes,
		func(ctx context.Context, cRes string) (*gateway.Response, error) {
			return s.requester.Request(ctx, map[string]any{
				"AzulOrderId": session.AzulOrderID,
				"CRes":        cRes,
			}, gateway.ProcessThreeDSChallenge)
		})
	if err != nil {
		return nil, err
	}

	if !resp.Terminal() {
		// 质询应答之后不应再出现中间态，保守起见保留会话
		return s.settleMethod(ctx, secureID, resp)
	}

	if err := s.sessions.Remove(ctx, secureID); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("3ds challenge reached terminal state",
			clog.String("secure_id", secureID),
			clog.String("kind", string(resp.Kind)))
	}
	return &Result{Status: statusOf(resp), SecureID: secureID, Response: resp}, nil
}

// appendSecureID 把 secureId 织入回调地址，已有查询串时用 & 连接
func appendSecureID(url, secureID string) string {
	if strings.Contains(url, "?") {
		return url + "&secureId=" + secureID
	}
	return url + "?secureId=" + secureID
}
