package storage

import (
	"context"
	"io"
)

// Provider 媒体存储提供者接口
// 关卡截图的宿主存储，所有实现必须遵循此接口
type Provider interface {
	// SaveWithContext 保存对象到存储
	SaveWithContext(ctx context.Context, identifier string, file io.Reader) error

	// GetWithContext 从存储获取对象
	GetWithContext(ctx context.Context, identifier string) (io.ReadSeeker, error)

	// DeleteWithContext 从存储删除对象
	DeleteWithContext(ctx context.Context, identifier string) error

	// Exists 检查对象是否存在
	Exists(ctx context.Context, identifier string) (bool, error)

	// Health 检查存储健康状态
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}
