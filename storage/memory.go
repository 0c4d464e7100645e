package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStorage 内存存储实现，用于测试和本地开发
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStorage 创建内存存储提供者
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string][]byte),
	}
}

// SaveWithContext 保存对象到内存
func (s *MemoryStorage) SaveWithContext(ctx context.Context, identifier string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[identifier] = data
	return nil
}

// GetWithContext 从内存获取对象
func (s *MemoryStorage) GetWithContext(ctx context.Context, identifier string) (io.ReadSeeker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[identifier]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", identifier)
	}
	return bytes.NewReader(data), nil
}

// DeleteWithContext 从内存删除对象
func (s *MemoryStorage) DeleteWithContext(ctx context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[identifier]; !ok {
		return fmt.Errorf("object to delete not found: %s", identifier)
	}
	delete(s.objects, identifier)
	return nil
}

// Exists 检查对象是否存在
func (s *MemoryStorage) Exists(ctx context.Context, identifier string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[identifier]
	return ok, nil
}

// Health 检查存储健康状态
func (s *MemoryStorage) Health(ctx context.Context) error {
	return nil
}

// Name 返回存储名称
func (s *MemoryStorage) Name() string {
	return "memory"
}

// Len 返回当前对象数量
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
