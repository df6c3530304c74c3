package config

import "fmt"

// StoreConfig 备用服务缓存配置
type StoreConfig struct {
	// MaxOrigins 最多缓存的 origin 数量，超出后按 LRU 淘汰
	MaxOrigins int `json:"max_origins"`
}

// DefaultStoreConfig 返回默认配置
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		MaxOrigins: 200,
	}
}

// Validate 验证配置
func (c StoreConfig) Validate() error {
	if c.MaxOrigins <= 0 {
		return fmt.Errorf("store.max_origins must be positive, got %d", c.MaxOrigins)
	}
	return nil
}
