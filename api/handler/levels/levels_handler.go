package levels

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gdshowcase/gd-showcase/api/common"
	levelsvc "github.com/gdshowcase/gd-showcase/internal/services/levels"
	"github.com/gin-gonic/gin"
)

// Handler 关卡相关接口
type Handler struct {
	query      *levelsvc.QueryService
	submit     *levelsvc.SubmitService
	moderation *levelsvc.ModerationService
}

// NewHandler 创建关卡处理器
func NewHandler(query *levelsvc.QueryService, submit *levelsvc.SubmitService, moderation *levelsvc.ModerationService) *Handler {
	return &Handler{
		query:      query,
		submit:     submit,
		moderation: moderation,
	}
}

// List 获取关卡列表，支持 status/type/search 过滤
func (h *Handler) List(c *gin.Context) {
	result, err := h.query.List(c.Request.Context(),
		c.Query("status"), c.Query("type"), c.Query("search"))
	if err != nil {
		log.Printf("Error: failed to fetch levels: %v", err)
		common.ErrorWithDetails(c, http.StatusInternalServerError, "Failed to fetch levels", []string{err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get 获取单个关卡
func (h *Handler) Get(c *gin.Context) {
	level, err := h.query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, levelsvc.ErrLevelNotFound) {
			common.Error(c, http.StatusNotFound, "Level not found")
			return
		}
		log.Printf("Error: failed to fetch level %s: %v", c.Param("id"), err)
		common.Error(c, http.StatusInternalServerError, "Failed to fetch level")
		return
	}
	c.JSON(http.StatusOK, level)
}

// Submit 处理关卡投稿
func (h *Handler) Submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		common.Error(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	videoLink := c.PostForm("videoLink")
	if videoLink == "" {
		// 旧版前端使用 video 字段名
		videoLink = c.PostForm("video")
	}

	input := levelsvc.SubmitInput{
		LevelID:    c.PostForm("id"),
		Title:      c.PostForm("title"),
		Creator:    c.PostForm("creator"),
		Type:       c.PostForm("type"),
		Difficulty: c.PostForm("difficulty"),
		VideoLink:  videoLink,
		Files:      form.File["images"],
	}

	level, err := h.submit.Submit(c.Request.Context(), input)
	if err != nil {
		if ve, ok := levelsvc.AsValidationError(err); ok {
			common.ErrorWithDetails(c, http.StatusBadRequest, ve.Message, ve.Details)
			return
		}
		log.Printf("Error: failed to save level submission: %v", err)
		common.Error(c, http.StatusInternalServerError, "Failed to save level data.")
		return
	}

	common.SuccessLevel(c, http.StatusCreated, level)
}

// SetStatus 更新关卡审核状态
func (h *Handler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	level, err := h.moderation.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, levelsvc.ErrLevelNotFound):
			common.Error(c, http.StatusNotFound, "Level not found")
		default:
			if ve, ok := levelsvc.AsValidationError(err); ok {
				common.Error(c, http.StatusBadRequest, ve.Message)
				return
			}
			log.Printf("Error: failed to update level status: %v", err)
			common.Error(c, http.StatusInternalServerError, "Failed to update level status")
		}
		return
	}

	common.SuccessLevel(c, http.StatusOK, level)
}

// Delete 删除关卡及其全部媒体
func (h *Handler) Delete(c *gin.Context) {
	err := h.moderation.DeleteLevel(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, levelsvc.ErrLevelNotFound) {
			common.Error(c, http.StatusNotFound, "Level not found")
			return
		}
		if me, ok := levelsvc.AsMediaError(err); ok {
			log.Printf("Error: %v (remaining media: %v)", me, me.RemainingMedia)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":           "Failed to delete submission.",
				"remaining_media": me.RemainingMedia,
			})
			return
		}
		log.Printf("Error: failed to delete submission: %v", err)
		common.Error(c, http.StatusInternalServerError, "Failed to delete submission.")
		return
	}

	common.SuccessMessage(c, http.StatusOK, "Submission deleted successfully.")
}

// DeleteImage 删除关卡的一张截图
// 存储ID含路径分隔符，路由使用通配参数，需去掉前导斜杠
func (h *Handler) DeleteImage(c *gin.Context) {
	imageID := strings.TrimPrefix(c.Param("imageId"), "/")
	level, err := h.moderation.DeleteImage(c.Request.Context(), c.Param("id"), imageID)
	if err != nil {
		switch {
		case errors.Is(err, levelsvc.ErrLevelNotFound):
			common.Error(c, http.StatusNotFound, "Level not found")
		case errors.Is(err, levelsvc.ErrImageNotFound):
			common.Error(c, http.StatusNotFound, "Image not found")
		default:
			log.Printf("Error: failed to delete image: %v", err)
			common.Error(c, http.StatusInternalServerError, "Failed to delete image")
		}
		return
	}

	common.SuccessLevel(c, http.StatusOK, level)
}
