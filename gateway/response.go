package gateway

import (
	"encoding/json"

	"github.com/ceyewan/azulpay/xerrors"
)

// Kind 网关响应的封闭判别类型
//
// 网关用字符串字面量（ResponseMessage / IsoCode）区分响应形态，
// 本包在解析时一次性收敛成封闭枚举，上层据此穷举分支，
// 不再散落字符串比较。
type Kind string

const (
	// KindApproved 交易核准（IsoCode "00" + ResponseMessage "APROBADA"）
	KindApproved Kind = "approved"
	// KindChallenge 需要 3DS 质询（ResponseMessage "3D_SECURE_CHALLENGE"）
	KindChallenge Kind = "challenge"
	// KindMethod 需要 3DS method 步骤（ResponseMessage "3D_SECURE_2_METHOD"）
	KindMethod Kind = "method"
	// KindRejected 其余一切：拒绝、参数错误、风控失败等
	KindRejected Kind = "rejected"
)

// 网关判别字面量
const (
	isoApproved  = "00"
	msgApproved  = "APROBADA"
	msgChallenge = "3D_SECURE_CHALLENGE"
	msgMethod    = "3D_SECURE_2_METHOD"
)

// ChallengeData 3DS 质询载荷
type ChallengeData struct {
	CReq            string `json:"CReq"`
	RedirectPostURL string `json:"RedirectPostUrl"`
}

// MethodData 3DS method 载荷
type MethodData struct {
	// MethodForm 发卡行提供的自提交表单 HTML
	MethodForm string `json:"MethodForm"`
}

// Response 解析后的网关响应
//
// Kind 决定哪些载荷字段有效：KindChallenge 时 Challenge 非空，
// KindMethod 时 Method 非空，其余情况二者皆为 nil。
type Response struct {
	Kind Kind `json:"Kind"`

	AzulOrderID       string `json:"AzulOrderId"`
	IsoCode           string `json:"IsoCode"`
	ResponseMessage   string `json:"ResponseMessage"`
	AuthorizationCode string `json:"AuthorizationCode,omitempty"`
	CustomOrderID     string `json:"CustomOrderId,omitempty"`
	DateTime          string `json:"DateTime,omitempty"`
	ErrorDescription  string `json:"ErrorDescription,omitempty"`
	LotNumber         string `json:"LotNumber,omitempty"`
	RRN               string `json:"RRN,omitempty"`
	ResponseCode      string `json:"ResponseCode,omitempty"`
	Ticket            string `json:"Ticket,omitempty"`

	Challenge *ChallengeData `json:"ThreeDSChallenge,omitempty"`
	Method    *MethodData    `json:"ThreeDSMethod,omitempty"`
}

// ParseResponse 解析网关 JSON 响应并判别形态
//
// 判别依据 ResponseMessage 字面量；质询 / method 响应缺少对应
// 载荷时视为畸形响应返回 ErrMalformedResponse。
func ParseResponse(raw []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, xerrors.Wrap(ErrMalformedResponse, err.Error())
	}

	switch resp.ResponseMessage {
	case msgChallenge:
		if resp.Challenge == nil || resp.Challenge.CReq == "" || resp.Challenge.RedirectPostURL == "" {
			return nil, xerrors.Wrap(ErrMalformedResponse, "challenge response missing ThreeDSChallenge payload")
		}
		if resp.AzulOrderID == "" {
			return nil, xerrors.Wrap(ErrMalformedResponse, "challenge response missing AzulOrderId")
		}
		resp.Kind = KindChallenge
	case msgMethod:
		if resp.Method == nil || resp.Method.MethodForm == "" {
			return nil, xerrors.Wrap(ErrMalformedResponse, "method response missing ThreeDSMethod payload")
		}
		if resp.AzulOrderID == "" {
			return nil, xerrors.Wrap(ErrMalformedResponse, "method response missing AzulOrderId")
		}
		resp.Kind = KindMethod
	case msgApproved:
		if resp.IsoCode != isoApproved {
			// APROBADA 与非 00 的 IsoCode 组合按拒绝处理
			resp.Kind = KindRejected
			break
		}
		resp.Kind = KindApproved
	default:
		resp.Kind = KindRejected
	}

	return &resp, nil
}

// Terminal 报告响应是否已到终态（核准或拒绝）
//
// 质询 / method 响应意味着流程仍在进行，会话需要保留。
func (r *Response) Terminal() bool {
	switch r.Kind {
	case KindApproved, KindRejected:
		return true
	case KindChallenge, KindMethod:
		return false
	}
	return true
}
