package media

import (
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdshowcase/gd-showcase/api/common"
	"github.com/gdshowcase/gd-showcase/storage"
	"github.com/gin-gonic/gin"
)

// 存储后端不暴露修改时间，按零值处理让 ServeContent 跳过条件请求
var modTimeZero time.Time

// Handler 媒体对象访问接口
type Handler struct {
	storage storage.Provider
}

// NewHandler 创建媒体处理器
func NewHandler(provider storage.Provider) *Handler {
	return &Handler{storage: provider}
}

// Serve 从存储后端读取对象并返回
func (h *Handler) Serve(c *gin.Context) {
	objectKey := strings.TrimPrefix(c.Param("path"), "/")
	if !storage.IsValidObjectKey(objectKey) {
		common.Error(c, http.StatusBadRequest, "Invalid media path")
		return
	}

	reader, err := h.storage.GetWithContext(c.Request.Context(), objectKey)
	if err != nil {
		common.Error(c, http.StatusNotFound, "Media not found")
		return
	}
	if closer, ok := reader.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	contentType := mime.TypeByExtension(filepath.Ext(objectKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")

	http.ServeContent(c.Writer, c.Request, filepath.Base(objectKey), modTimeZero, reader)
	if c.Writer.Status() >= http.StatusBadRequest {
		log.Printf("Warning: failed to serve media object %s", objectKey)
	}
}
