package middleware

import (
	"net/http"

	"github.com/gdshowcase/gd-showcase/api/common"
	"github.com/gdshowcase/gd-showcase/internal/services/auth"
	"github.com/gin-gonic/gin"
)

// 审核准入使用的 cookie 名称
const (
	CookieAuthenticated = "authenticated"
	CookieAccessMethod  = "access_method"
)

// AccessGate 审核后台准入中间件
// 同时要求有效的签名令牌和正确的访问方式标记，二者缺一即拒绝
func AccessGate(gate *auth.GateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsGateAuthorized(c, gate) {
			common.Error(c, http.StatusUnauthorized, "Access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsGateAuthorized 检查请求携带的准入 cookie 是否有效
func IsGateAuthorized(c *gin.Context, gate *auth.GateService) bool {
	token, err := c.Cookie(CookieAuthenticated)
	if err != nil || token == "" {
		return false
	}
	if err := gate.ValidateToken(token); err != nil {
		return false
	}

	method, err := c.Cookie(CookieAccessMethod)
	if err != nil || method != auth.AccessMethodButton {
		return false
	}
	return true
}
