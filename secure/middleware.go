package secure

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ceyewan/azulpay/clog"
)

// MethodHandler 返回处理 ACS method 通知的 gin 处理器
//
// ACS 会把持卡人浏览器 POST 到商户注册的 MethodNotificationUrl，
// secureId 由 Sale 织入查询参数。典型挂载：
//
//	r.POST("/webhooks/method", secure.MethodHandler(sec, logger))
func MethodHandler(s *Secure, logger clog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secureID := c.Query("secureId")
		if secureID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing secureId"})
			return
		}

		result, err := s.ProcessMethod(c.Request.Context(), secureID)
		writeResult(c, logger, secureID, result, err)
	}
}

// ChallengeHandler 返回处理质询应答的 gin 处理器
//
// 发卡行质询完成后，持卡人浏览器会把 cRes 表单字段 POST 到
// TermUrl。典型挂载：
//
//	r.POST("/webhooks/challenge", secure.ChallengeHandler(sec, logger))
func ChallengeHandler(s *Secure, logger clog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secureID := c.Query("secureId")
		if secureID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing secureId"})
			return
		}

		cRes := c.PostForm("cRes")
		if cRes == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cRes"})
			return
		}

		result, err := s.ProcessChallenge(c.Request.Context(), secureID, cRes)
		writeResult(c, logger, secureID, result, err)
	}
}

// writeResult 统一的结果出口
//
// 中间态结果携带要投递给浏览器的 HTML，以 text/html 返回；
// 终态结果以 JSON 返回。
func writeResult(c *gin.Context, logger clog.Logger, secureID string, result *Result, err error) {
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if logger != nil {
			logger.Error("3ds webhook failed",
				clog.String("secure_id", secureID),
				clog.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if result.Pending() {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.Form))
		return
	}
	c.JSON(http.StatusOK, result)
}
