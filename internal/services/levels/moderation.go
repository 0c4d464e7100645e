package levels

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gdshowcase/gd-showcase/database/models"
	"github.com/gdshowcase/gd-showcase/database/repo/levels"
	"github.com/gdshowcase/gd-showcase/storage"
	"gorm.io/gorm"
)

// ModerationService 处理审核后台的状态变更与删除操作
type ModerationService struct {
	repo    *levels.Repository
	storage storage.Provider
}

// NewModerationService 创建审核服务
func NewModerationService(repo *levels.Repository, provider storage.Provider) *ModerationService {
	return &ModerationService{
		repo:    repo,
		storage: provider,
	}
}

// SetStatus 更新关卡的审核状态
func (s *ModerationService) SetStatus(ctx context.Context, levelID, status string) (*models.Level, error) {
	newStatus := models.LevelStatus(status)
	if !newStatus.Valid() {
		return nil, NewValidationError(fmt.Sprintf("invalid status: %s", status))
	}

	level, err := s.repo.WithContext(ctx).UpdateStatus(levelID, newStatus)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return level, nil
}

// DeleteLevel 删除关卡及其全部媒体
// 先删除存储对象，全部成功后才移除数据库记录；部分失败时收敛
// 已删除成功的截图行并返回仍残留的对象，记录保留以便重试
func (s *ModerationService) DeleteLevel(ctx context.Context, levelID string) error {
	level, err := s.repo.WithContext(ctx).GetByLevelID(levelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLevelNotFound
		}
		return fmt.Errorf("failed to load level: %w", err)
	}

	var deleted, remaining []string
	for _, storageID := range level.MediaStorageIDs() {
		if err := s.storage.DeleteWithContext(ctx, storageID); err != nil {
			log.Printf("Warning: failed to delete media object %s for level %s: %v", storageID, levelID, err)
			remaining = append(remaining, storageID)
			continue
		}
		deleted = append(deleted, storageID)
	}

	if len(remaining) > 0 {
		if err := s.repo.WithContext(ctx).PruneImages(level, deleted); err != nil {
			log.Printf("Warning: failed to prune deleted image rows for level %s: %v", levelID, err)
		}
		return &MediaError{
			Message:        "failed to delete all media for level " + levelID,
			RemainingMedia: remaining,
		}
	}

	if err := s.repo.WithContext(ctx).Delete(level); err != nil {
		return fmt.Errorf("failed to delete level record: %w", err)
	}
	return nil
}

// DeleteImage 删除关卡的一张截图
// 被删截图是缩略图来源时，缩略图重设为剩余的第一张，没有剩余则回退占位图
func (s *ModerationService) DeleteImage(ctx context.Context, levelID, storageID string) (*models.Level, error) {
	level, err := s.repo.WithContext(ctx).GetByLevelID(levelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to load level: %w", err)
	}

	if _, ok := level.ImageByStorageID(storageID); !ok {
		return nil, ErrImageNotFound
	}

	if err := s.storage.DeleteWithContext(ctx, storageID); err != nil {
		return nil, &MediaError{
			Message:        "failed to delete media object " + storageID,
			RemainingMedia: []string{storageID},
			Cause:          err,
		}
	}

	kept := level.Images[:0]
	for _, img := range level.Images {
		if img.StorageID != storageID {
			kept = append(kept, img)
		}
	}
	level.Images = kept

	if level.Thumbnail.StorageID == storageID {
		if len(level.Images) > 0 {
			level.Thumbnail = models.ImageRef{
				URL:       level.Images[0].URL,
				StorageID: level.Images[0].StorageID,
			}
		} else {
			level.Thumbnail = models.ImageRef{URL: models.DefaultThumbnailURL}
		}
	}

	if err := s.repo.WithContext(ctx).RemoveImage(level, storageID); err != nil {
		return nil, fmt.Errorf("failed to remove image record: %w", err)
	}
	return level, nil
}
