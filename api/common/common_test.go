package common

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestResponseHelpers(t *testing.T) {
	t.Run("错误响应", func(t *testing.T) {
		w := record(func(c *gin.Context) { Error(c, 404, "Level not found") })
		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"Level not found"}`, w.Body.String())
	})

	t.Run("带细节的错误响应", func(t *testing.T) {
		w := record(func(c *gin.Context) {
			ErrorWithDetails(c, 500, "Failed to fetch levels", []string{"db down"})
		})
		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch levels","details":["db down"]}`, w.Body.String())
	})

	t.Run("细节为空时退化为普通错误", func(t *testing.T) {
		w := record(func(c *gin.Context) { ErrorWithDetails(c, 500, "boom", nil) })
		assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
	})

	t.Run("成功响应", func(t *testing.T) {
		w := record(func(c *gin.Context) { SuccessMessage(c, 200, "done") })
		assert.JSONEq(t, `{"success":true,"message":"done"}`, w.Body.String())

		w = record(func(c *gin.Context) { SuccessLevel(c, 201, gin.H{"id": "1"}) })
		assert.Equal(t, 201, w.Code)
		assert.JSONEq(t, `{"success":true,"level":{"id":"1"}}`, w.Body.String())
	})
}
