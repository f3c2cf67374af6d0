package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseApproved 测试核准响应判别
func TestParseApproved(t *testing.T) {
	raw := []byte(`{
		"IsoCode": "00",
		"ResponseMessage": "APROBADA",
		"AzulOrderId": "44444",
		"AuthorizationCode": "OK123",
		"RRN": "2023000012345",
		"Ticket": "1"
	}`)

	resp, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindApproved, resp.Kind)
	assert.Equal(t, "44444", resp.AzulOrderID)
	assert.True(t, resp.Terminal())
	assert.Nil(t, resp.Challenge)
	assert.Nil(t, resp.Method)
}

// TestParseChallenge 测试质询响应判别
func TestParseChallenge(t *testing.T) {
	raw := []byte(`{
		"IsoCode": "3D",
		"ResponseMessage": "3D_SECURE_CHALLENGE",
		"AzulOrderId": "55555",
		"ThreeDSChallenge": {
			"CReq": "eyJtZXNzYWdlVHlwZSI6IkNSZXEifQ",
			"RedirectPostUrl": "https://acs.example.com/challenge"
		}
	}`)

	resp, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindChallenge, resp.Kind)
	assert.False(t, resp.Terminal())
	require.NotNil(t, resp.Challenge)
	assert.Equal(t, "https://acs.example.com/challenge", resp.Challenge.RedirectPostURL)
}

// TestParseMethod 测试 method 响应判别
func TestParseMethod(t *testing.T) {
	raw := []byte(`{
		"IsoCode": "3D2METHOD",
		"ResponseMessage": "3D_SECURE_2_METHOD",
		"AzulOrderId": "66666",
		"ThreeDSMethod": {
			"MethodForm": "<form target=\"frame\" action=\"https://acs.example.com/method\"></form>"
		}
	}`)

	resp, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindMethod, resp.Kind)
	assert.False(t, resp.Terminal())
	require.NotNil(t, resp.Method)
}

// TestParseRejected 测试拒绝响应：未知字面量一律收敛为 KindRejected
func TestParseRejected(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"declined", `{"IsoCode": "51", "ResponseMessage": "DECLINADA", "ErrorDescription": "Insufficient funds"}`},
		{"validation error", `{"IsoCode": "99", "ResponseMessage": "ERROR", "ErrorDescription": "VALIDATION_ERROR:Amount"}`},
		{"aprobada with wrong iso", `{"IsoCode": "08", "ResponseMessage": "APROBADA"}`},
		{"empty body", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := ParseResponse([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, KindRejected, resp.Kind)
			assert.True(t, resp.Terminal())
		})
	}
}

// TestParseMalformed 测试畸形响应
func TestParseMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `<html>gateway error</html>`},
		{"challenge without payload", `{"ResponseMessage": "3D_SECURE_CHALLENGE", "AzulOrderId": "1"}`},
		{"challenge without order id", `{"ResponseMessage": "3D_SECURE_CHALLENGE", "ThreeDSChallenge": {"CReq": "x", "RedirectPostUrl": "y"}}`},
		{"method without form", `{"ResponseMessage": "3D_SECURE_2_METHOD", "AzulOrderId": "1", "ThreeDSMethod": {}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseResponse([]byte(tc.raw))
			assert.Error(t, err)
		})
	}
}

// TestResponseRoundTrip 测试响应经 JSON 序列化后判别信息不丢失
//
// 幂等组件会把响应整体缓存为 JSON，重复调用方拿到的是反序列化
// 副本，Kind 与载荷必须原样恢复。
func TestResponseRoundTrip(t *testing.T) {
	original := &Response{
		Kind:        KindChallenge,
		AzulOrderID: "77777",
		IsoCode:     "3D",
		Challenge: &ChallengeData{
			CReq:            "creq-token",
			RedirectPostURL: "https://acs.example.com/x",
		},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Response
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, *original.Challenge, *restored.Challenge)
	assert.Equal(t, original.Kind, restored.Kind)
}
