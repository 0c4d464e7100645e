package levels

import (
	"context"

	"github.com/gdshowcase/gd-showcase/database/models"
	"gorm.io/gorm"
)

// ListFilter 列表查询的等值过滤条件，零值字段不参与过滤
type ListFilter struct {
	Status models.LevelStatus
	Type   models.LevelType
	Search string // title/creator 子串匹配
}

// Repository 关卡仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的关卡仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存新的关卡记录（连同截图）
func (r *Repository) Create(level *models.Level) error {
	return r.db.Create(level).Error
}

// GetByLevelID 通过外部关卡ID获取记录
// 外部ID不保证唯一，取最新的一条
func (r *Repository) GetByLevelID(levelID string) (*models.Level, error) {
	var level models.Level
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("level_images.position asc")
	}).Where("level_id = ?", levelID).
		Order("created_at desc").
		First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// List 按过滤条件获取关卡列表，按创建时间倒序
func (r *Repository) List(filter ListFilter) ([]*models.Level, error) {
	db := r.db.Model(&models.Level{})

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("title LIKE ? OR creator LIKE ?", pattern, pattern)
	}

	levels := make([]*models.Level, 0)
	err := db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("level_images.position asc")
	}).Order("created_at desc").
		Find(&levels).Error
	return levels, err
}

// UpdateStatus 更新审核状态并返回更新后的记录
func (r *Repository) UpdateStatus(levelID string, status models.LevelStatus) (*models.Level, error) {
	level, err := r.GetByLevelID(levelID)
	if err != nil {
		return nil, err
	}

	level.Status = status
	if err := r.db.Save(level).Error; err != nil {
		return nil, err
	}
	return level, nil
}

// Save 保存整条记录
func (r *Repository) Save(level *models.Level) error {
	return r.db.Save(level).Error
}

// Delete 硬删除关卡记录及其截图行
func (r *Repository) Delete(level *models.Level) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("level_row_id = ?", level.ID).Delete(&models.LevelImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(level).Error
	})
}

// RemoveImage 在事务中删除一张截图行、压实剩余序号并持久化缩略图变更
// 调用方需已从 level.Images 中移除该截图并重设缩略图
func (r *Repository) RemoveImage(level *models.Level, storageID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("level_row_id = ? AND public_id = ?", level.ID, storageID).
			Delete(&models.LevelImage{}).Error; err != nil {
			return err
		}
		for i := range level.Images {
			level.Images[i].Position = i
			if err := tx.Model(&models.LevelImage{}).
				Where("id = ?", level.Images[i].ID).
				Update("position", i).Error; err != nil {
				return err
			}
		}
		// 列级更新，跳过整条记录的校验钩子
		return tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.Level{}).
			Where("id = ?", level.ID).
			Updates(map[string]interface{}{
				"thumbnail_url":       level.Thumbnail.URL,
				"thumbnail_public_id": level.Thumbnail.StorageID,
			}).Error
	})
}

// PruneImages 删除指定存储ID对应的截图行（级联删除部分失败时收敛记录用）
func (r *Repository) PruneImages(level *models.Level, storageIDs []string) error {
	if len(storageIDs) == 0 {
		return nil
	}
	return r.db.Where("level_row_id = ? AND public_id IN ?", level.ID, storageIDs).
		Delete(&models.LevelImage{}).Error
}

// All 返回全部关卡记录（clean 命令用）
func (r *Repository) All() ([]*models.Level, error) {
	levels := make([]*models.Level, 0)
	err := r.db.Preload("Images").Find(&levels).Error
	return levels, err
}

// Ping 检查数据库连接
func (r *Repository) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// DB 返回底层 *gorm.DB 实例
func (r *Repository) DB() *gorm.DB {
	return r.db
}
