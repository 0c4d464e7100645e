package levels

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gdshowcase/gd-showcase/config"
	"github.com/gdshowcase/gd-showcase/database/models"
	"github.com/gdshowcase/gd-showcase/database/repo/levels"
	"github.com/gdshowcase/gd-showcase/storage"
	"github.com/gdshowcase/gd-showcase/utils"
	"github.com/gdshowcase/gd-showcase/utils/validator"
	"github.com/google/uuid"
)

// SubmitService 处理关卡投稿
type SubmitService struct {
	repo    *levels.Repository
	storage storage.Provider
}

// NewSubmitService 创建投稿服务
func NewSubmitService(repo *levels.Repository, provider storage.Provider) *SubmitService {
	return &SubmitService{
		repo:    repo,
		storage: provider,
	}
}

// SubmitInput 一次投稿的全部输入
type SubmitInput struct {
	LevelID    string
	Title      string
	Creator    string
	Type       string
	Difficulty string
	VideoLink  string
	Files      []*multipart.FileHeader
}

// Submit 校验投稿、上传截图并落库
// 字段校验在任何上传发生之前完成；落库失败时回收已上传的对象
func (s *SubmitService) Submit(ctx context.Context, input SubmitInput) (*models.Level, error) {
	cfg := config.Get()

	level := &models.Level{
		LevelID:    strings.TrimSpace(input.LevelID),
		Title:      strings.TrimSpace(input.Title),
		Creator:    strings.TrimSpace(input.Creator),
		Type:       models.LevelType(input.Type),
		Difficulty: models.LevelDifficulty(input.Difficulty),
		VideoLink:  strings.TrimSpace(input.VideoLink),
		Status:     models.StatusPending,
	}

	if err := level.Validate(); err != nil {
		return nil, NewValidationError("Validation failed", err.Error())
	}

	if len(input.Files) == 0 {
		return nil, NewValidationError("Validation failed", "at least one image is required")
	}
	if len(input.Files) > cfg.MaxUploadFiles() {
		return nil, NewValidationError("Validation failed",
			fmt.Sprintf("at most %d images are allowed", cfg.MaxUploadFiles()))
	}
	for _, header := range input.Files {
		if header.Size > cfg.MaxUploadBytes() {
			return nil, NewValidationError("Validation failed",
				fmt.Sprintf("image %s exceeds the %dMB size limit", header.Filename, cfg.UploadMaxSizeMB))
		}
	}

	uploaded := make([]string, 0, len(input.Files))
	images := make([]models.LevelImage, 0, len(input.Files))

	for i, header := range input.Files {
		img, err := s.uploadOne(ctx, header, i)
		if err != nil {
			s.rollbackUploads(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, img.StorageID)
		images = append(images, *img)
	}

	level.Images = images
	level.Thumbnail = models.ImageRef{
		URL:       images[0].URL,
		StorageID: images[0].StorageID,
	}

	if err := s.repo.Create(level); err != nil {
		s.rollbackUploads(ctx, uploaded)
		return nil, fmt.Errorf("failed to save level: %w", err)
	}

	return level, nil
}

// uploadOne 校验单张截图类型并上传到存储后端
func (s *SubmitService) uploadOne(ctx context.Context, header *multipart.FileHeader, position int) (*models.LevelImage, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
	}
	defer file.Close()

	ok, mimeType, err := validator.SniffImage(file)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect file %s: %w", header.Filename, err)
	}
	if !ok {
		return nil, NewValidationError("Validation failed",
			fmt.Sprintf("file %s is not a supported image type (got %s)", header.Filename, mimeType))
	}

	width, height := utils.GetImageDimensions(file)
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to rewind file %s: %w", header.Filename, err)
	}

	objectKey := fmt.Sprintf("levels/%s.%s", uuid.NewString(), validator.ExtensionForMime(mimeType))
	if err := s.storage.SaveWithContext(ctx, objectKey, file); err != nil {
		return nil, fmt.Errorf("failed to store image %s: %w", header.Filename, err)
	}

	return &models.LevelImage{
		Position:  position,
		URL:       config.Get().BaseURL() + path.Join("/media", objectKey),
		StorageID: objectKey,
		Width:     width,
		Height:    height,
		FileSize:  header.Size,
		MimeType:  mimeType,
	}, nil
}

// rollbackUploads 回收本次已上传成功的对象
func (s *SubmitService) rollbackUploads(ctx context.Context, storageIDs []string) {
	for _, id := range storageIDs {
		if err := s.storage.DeleteWithContext(ctx, id); err != nil {
			log.Printf("Warning: failed to roll back uploaded object %s: %v", id, err)
		}
	}
}
