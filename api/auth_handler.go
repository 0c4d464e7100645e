package api

import (
	"net/http"

	"github.com/gdshowcase/gd-showcase/api/common"
	"github.com/gdshowcase/gd-showcase/api/middleware"
	"github.com/gdshowcase/gd-showcase/internal/services/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler 审核准入接口
type AuthHandler struct {
	gate *auth.GateService
}

// NewAuthHandler 创建准入处理器
func NewAuthHandler(gate *auth.GateService) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// authenticateRequest 准入请求体
type authenticateRequest struct {
	Password string `json:"password" form:"password"`
}

// Authenticate 处理审核口令校验
// 口令正确时签发访问令牌并写入 HttpOnly cookie
func (h *AuthHandler) Authenticate(c *gin.Context) {
	// 缺失或解析失败的口令与错误口令同样按 401 处理
	var req authenticateRequest
	if err := c.ShouldBind(&req); err != nil || req.Password == "" || !h.gate.VerifySecret(req.Password) {
		common.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, ttl, err := h.gate.IssueToken()
	if err != nil {
		common.Error(c, http.StatusInternalServerError, "Failed to issue access token")
		return
	}

	maxAge := int(ttl.Seconds())
	c.SetCookie(middleware.CookieAuthenticated, token, maxAge, "/", "", false, true)
	c.SetCookie(middleware.CookieAccessMethod, auth.AccessMethodButton, maxAge, "/", "", false, true)
	c.Status(http.StatusOK)
}
