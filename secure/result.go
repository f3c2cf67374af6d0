package secure

import (
	"encoding/json"

	"github.com/ceyewan/azulpay/gateway"
	"github.com/ceyewan/azulpay/xerrors"
)

// Result 一次 3DS 操作的结果
//
// Status 决定哪些字段有效：中间态（method / challenge pending）时
// Form 携带要投递给浏览器的 HTML；终态时 Response 携带网关响应。
type Result struct {
	// Status 会话状态
	Status Status `json:"status"`

	// SecureID 本次 3DS 会话的关联标识
	SecureID string `json:"secureId"`

	// Form 中间态时需要交给持卡人浏览器渲染的 HTML 片段
	Form string `json:"form,omitempty"`

	// Response 终态时的网关响应
	Response *gateway.Response `json:"response,omitempty"`
}

// Pending 报告结果是否仍处于中间态
func (r *Result) Pending() bool {
	return r.Status == StatusMethodPending || r.Status == StatusChallengePending
}

// statusOf 把网关终态响应映射为对外状态
func statusOf(resp *gateway.Response) Status {
	if resp.Kind == gateway.KindApproved {
		return StatusApproved
	}
	return StatusRejected
}

// unmarshalResponse 反序列化幂等缓存中的网关响应
func unmarshalResponse(data []byte, resp *gateway.Response) error {
	if err := json.Unmarshal(data, resp); err != nil {
		return xerrors.Wrap(err, "secure: failed to unmarshal cached response")
	}
	return nil
}
