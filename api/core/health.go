package core

import (
	"net/http"
	"time"

	"github.com/gdshowcase/gd-showcase/database/repo/levels"
	"github.com/gdshowcase/gd-showcase/storage"
	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthHandler 健康检查接口
type HealthHandler struct {
	repo    *levels.Repository
	storage storage.Provider
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(repo *levels.Repository, provider storage.Provider) *HealthHandler {
	return &HealthHandler{
		repo:    repo,
		storage: provider,
	}
}

// Check 检查数据库与存储后端的可用性
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "ok"
	storageStatus := "ok"

	if err := h.repo.Ping(); err != nil {
		dbStatus = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := h.storage.Health(c.Request.Context()); err != nil {
		storageStatus = err.Error()
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"database": dbStatus,
		"storage":  storageStatus,
		"uptime":   time.Since(startTime).Round(time.Second).String(),
	})
}
