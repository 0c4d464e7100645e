package common

import (
	"github.com/gin-gonic/gin"
)

// Error 返回统一错误响应 {"error": "..."}
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ErrorWithDetails 返回携带细节的错误响应 {"error": "...", "details": [...]}
func ErrorWithDetails(c *gin.Context, status int, message string, details []string) {
	if len(details) == 0 {
		Error(c, status, message)
		return
	}
	c.JSON(status, gin.H{
		"error":   message,
		"details": details,
	})
}

// SuccessLevel 返回携带关卡记录的成功响应
func SuccessLevel(c *gin.Context, status int, level interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"level":   level,
	})
}

// SuccessMessage 返回携带提示信息的成功响应
func SuccessMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}
