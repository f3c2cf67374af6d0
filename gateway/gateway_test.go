package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequester(t *testing.T, url string) Requester {
	requester, err := New(&Config{
		Auth1:      "auth-one",
		Auth2:      "auth-two",
		MerchantID: "39038540035",
		URL:        url,
	})
	require.NoError(t, err)
	return requester
}

// TestRequestInjectsCredentials 测试 Auth 请求头与 Channel/Store 注入
func TestRequestInjectsCredentials(t *testing.T) {
	var seenBody map[string]any
	var seenHeader http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&seenBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"IsoCode":         "00",
			"ResponseMessage": "APROBADA",
			"AzulOrderId":     "1001",
		})
	}))
	defer server.Close()

	requester := newTestRequester(t, server.URL)

	resp, err := requester.Request(context.Background(), map[string]any{
		"Amount":  "1000",
		"TrxType": "Sale",
	}, ProcessSale)
	require.NoError(t, err)
	assert.Equal(t, KindApproved, resp.Kind)

	assert.Equal(t, "auth-one", seenHeader.Get("Auth1"))
	assert.Equal(t, "auth-two", seenHeader.Get("Auth2"))
	assert.Equal(t, "application/json", seenHeader.Get("Content-Type"))
	assert.Equal(t, "EC", seenBody["Channel"])
	assert.Equal(t, "39038540035", seenBody["Store"])
	assert.Equal(t, "1000", seenBody["Amount"])
}

// TestRequestProcessEndpoint 测试 3DS 续接端点选择
func TestRequestProcessEndpoint(t *testing.T) {
	var seenURI string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenURI = r.URL.RequestURI()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"IsoCode":         "00",
			"ResponseMessage": "APROBADA",
			"AzulOrderId":     "1002",
		})
	}))
	defer server.Close()

	requester := newTestRequester(t, server.URL)

	_, err := requester.Request(context.Background(), map[string]any{}, ProcessThreeDSMethod)
	require.NoError(t, err)
	assert.Contains(t, seenURI, "ProcessThreedsMethod")
}

// TestRequestTransportError 测试连接失败返回 TransportError
func TestRequestTransportError(t *testing.T) {
	// 指向已关闭的端口
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	requester := newTestRequester(t, url)

	_, err := requester.Request(context.Background(), map[string]any{}, ProcessSale)
	require.Error(t, err)
	assert.True(t, IsTransport(err), "expected transport error, got %v", err)
}

// TestRequestBadStatus 测试非 200 状态码
func TestRequestBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	requester := newTestRequester(t, server.URL)

	_, err := requester.Request(context.Background(), map[string]any{}, ProcessSale)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

// TestConfigValidation 测试配置校验
func TestConfigValidation(t *testing.T) {
	_, err := New(nil)
	assert.Equal(t, ErrConfigNil, err)

	_, err = New(&Config{})
	assert.Error(t, err, "missing merchant id should fail")

	_, err = New(&Config{MerchantID: "1", Certificate: "cert-without-key"})
	assert.Error(t, err, "certificate without key should fail")
}
