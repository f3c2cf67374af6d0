package secure

import (
	"html/template"
	"strings"

	"github.com/ceyewan/azulpay/xerrors"
)

// challengeFormTemplate 质询重定向表单
//
// 隐藏的自提交表单：浏览器加载后立即把 creq 与 TermUrl POST 到
// 发卡行的质询页面。字段名大小写（creq / TermUrl）是协议要求。
var challengeFormTemplate = template.Must(template.New("challenge").Parse(`
<form action="{{.RedirectPostURL}}" method="POST">
  <input type="hidden" name="creq" value="{{.CReq}}" />
  <input type="hidden" name="TermUrl" value="{{.TermURL}}" />
  <script>
    window.onload = function() {
      document.forms[0].submit();
    }
  </script>
</form>`))

// challengeForm 渲染质询重定向表单 HTML
func challengeForm(redirectPostURL, creq, termURL string) (string, error) {
	var b strings.Builder
	err := challengeFormTemplate.Execute(&b, struct {
		RedirectPostURL string
		CReq            string
		TermURL         string
	}{
		RedirectPostURL: redirectPostURL,
		CReq:            creq,
		TermURL:         termURL,
	})
	if err != nil {
		return "", xerrors.Wrap(err, "secure: failed to render challenge form")
	}
	return b.String(), nil
}

// methodForm 处理发卡行提供的 method 表单
//
// 表单由 ACS 生成并原样透传；非 iframe 渲染时剥掉 target 属性，
// 避免提交跳出当前页面。
func methodForm(form string, useIframe bool) string {
	if useIframe {
		return form
	}
	return strings.Replace(form, "target=", "", 1)
}
