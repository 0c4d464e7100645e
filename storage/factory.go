package storage

import (
	"fmt"
	"log"

	"github.com/gdshowcase/gd-showcase/config"
)

// Factory 存储工厂 - 负责创建和管理存储提供者
type Factory struct {
	providers       map[string]Provider
	defaultProvider string
}

// NewFactory 根据配置初始化存储提供者
func NewFactory(cfg *config.Config) (*Factory, error) {
	factory := &Factory{
		providers: make(map[string]Provider),
	}

	log.Println("Initializing storage providers...")

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = "local"
	}

	switch storageType {
	case "local":
		var localCfg config.LocalStorageConfig
		if err := config.DecodeStorage("local", &localCfg); err != nil {
			return nil, err
		}
		if localCfg.Path == "" {
			localCfg.Path = "./data/media"
		}
		provider, err := NewLocalStorage(localCfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		factory.providers["local"] = provider

	case "minio":
		var minioCfg config.MinioConfig
		if err := config.DecodeStorage("minio", &minioCfg); err != nil {
			return nil, err
		}
		provider, err := NewMinioStorage(minioCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize minio storage: %w", err)
		}
		factory.providers["minio"] = provider

	case "webdav":
		var webdavCfg config.WebDAVConfig
		if err := config.DecodeStorage("webdav", &webdavCfg); err != nil {
			return nil, err
		}
		provider, err := NewWebDAVStorage(webdavCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize webdav storage: %w", err)
		}
		factory.providers["webdav"] = provider

	case "memory":
		factory.providers["memory"] = NewMemoryStorage()

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}

	factory.defaultProvider = storageType
	log.Printf("Default storage provider set to: '%s'", storageType)

	return factory, nil
}

// Get 获取指定名称的存储提供者
func (f *Factory) Get(name string) (Provider, error) {
	if name == "" {
		name = f.defaultProvider
	}

	provider, ok := f.providers[name]
	if !ok {
		return nil, fmt.Errorf("storage provider '%s' not found", name)
	}
	return provider, nil
}

// GetDefault 获取默认存储提供者
func (f *Factory) GetDefault() Provider {
	provider, _ := f.Get(f.defaultProvider)
	return provider
}
