package levels

import (
	"context"
	"errors"

	"github.com/gdshowcase/gd-showcase/database/models"
	"github.com/gdshowcase/gd-showcase/database/repo/levels"
	"gorm.io/gorm"
)

// QueryService 只读查询
type QueryService struct {
	repo *levels.Repository
}

// NewQueryService 创建查询服务
func NewQueryService(repo *levels.Repository) *QueryService {
	return &QueryService{repo: repo}
}

// List 按过滤条件返回关卡列表，无结果时返回空切片
// 过滤值按等值匹配，未知的枚举值自然匹配不到任何记录
func (s *QueryService) List(ctx context.Context, status, levelType, search string) ([]*models.Level, error) {
	filter := levels.ListFilter{
		Status: models.LevelStatus(status),
		Type:   models.LevelType(levelType),
		Search: search,
	}
	return s.repo.WithContext(ctx).List(filter)
}

// Get 通过外部关卡ID获取记录
func (s *QueryService) Get(ctx context.Context, levelID string) (*models.Level, error) {
	level, err := s.repo.WithContext(ctx).GetByLevelID(levelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}
	return level, nil
}
