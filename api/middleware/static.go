package middleware

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdshowcase/gd-showcase/internal/services/auth"
	"github.com/gin-gonic/gin"
)

// dashboardPage 审核后台页面，需要通过准入校验才能访问
const dashboardPage = "dashboard.html"

// StaticHandler 静态资源中间件，从 webRoot 目录提供前端文件
// 审核后台页面在无有效准入 cookie 时重定向到首页
func StaticHandler(webRoot string, gate *auth.GateService) gin.HandlerFunc {
	fileServer := http.FileServer(http.Dir(webRoot))

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		reqPath := strings.TrimPrefix(filepath.Clean(c.Request.URL.Path), "/")
		if reqPath == "" || reqPath == "." {
			reqPath = "index.html"
		}

		fullPath := filepath.Join(webRoot, reqPath)
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			c.Next()
			return
		}

		if filepath.Base(reqPath) == dashboardPage && !IsGateAuthorized(c, gate) {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		fileServer.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}
}
