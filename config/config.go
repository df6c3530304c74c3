// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义，
// 支持从 JSON 加载和保存。
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.AltSvc.EnableQUIC = false
//
//	// 从 JSON 加载（未出现的字段保留默认值）
//	cfg, err := config.FromJSON(data)
package config

import (
	"encoding/json"
	"fmt"
)

// Config go-altsvc 的完整配置
//
//   - AltSvc: 通告处理策略（协议开关、QUIC 版本、有效期上限）
//   - Store: 按 origin 缓存处理结果
//   - Metrics: 遥测
type Config struct {
	// AltSvc 通告处理配置
	AltSvc AltSvcConfig `json:"altsvc"`

	// Store 备用服务缓存配置
	Store StoreConfig `json:"store"`

	// Metrics 遥测配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 返回使用默认值的配置
func NewConfig() *Config {
	return &Config{
		AltSvc:  DefaultAltSvcConfig(),
		Store:   DefaultStoreConfig(),
		Metrics: DefaultMetricsConfig(),
	}
}

// FromJSON 在默认配置之上解析 JSON
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ToJSON 序列化为缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
