package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gdshowcase/gd-showcase/config"
	"github.com/gdshowcase/gd-showcase/internal/services/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGateRouter(t *testing.T) (*gin.Engine, *auth.GateService) {
	gin.SetMode(gin.TestMode)

	gate, err := auth.NewGateService(&config.Config{
		GateTokenSecret: "middleware-test-secret",
		GateTokenTTL:    time.Hour,
	})
	require.NoError(t, err)

	router := gin.New()
	router.POST("/protected", AccessGate(gate), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, gate
}

func gateRequest(t *testing.T, router *gin.Engine, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAccessGate(t *testing.T) {
	router, gate := setupGateRouter(t)

	token, _, err := gate.IssueToken()
	require.NoError(t, err)

	t.Run("两个 cookie 都有效时放行", func(t *testing.T) {
		w := gateRequest(t, router,
			&http.Cookie{Name: CookieAuthenticated, Value: token},
			&http.Cookie{Name: CookieAccessMethod, Value: auth.AccessMethodButton})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("没有任何 cookie 被拒绝", func(t *testing.T) {
		w := gateRequest(t, router)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Access denied"}`, w.Body.String())
	})

	t.Run("只有令牌缺少访问方式标记被拒绝", func(t *testing.T) {
		w := gateRequest(t, router,
			&http.Cookie{Name: CookieAuthenticated, Value: token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("访问方式标记不对被拒绝", func(t *testing.T) {
		w := gateRequest(t, router,
			&http.Cookie{Name: CookieAuthenticated, Value: token},
			&http.Cookie{Name: CookieAccessMethod, Value: "url"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("伪造令牌被拒绝", func(t *testing.T) {
		w := gateRequest(t, router,
			&http.Cookie{Name: CookieAuthenticated, Value: "true"},
			&http.Cookie{Name: CookieAccessMethod, Value: auth.AccessMethodButton})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
