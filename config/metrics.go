package config

import (
	"errors"
	"regexp"
)

// MetricsConfig 遥测配置
type MetricsConfig struct {
	// Enabled 是否记录 Prometheus 指标，关闭时使用空实现
	Enabled bool `json:"enabled"`

	// Namespace 指标名前缀
	Namespace string `json:"namespace"`
}

// DefaultMetricsConfig 返回默认配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "altsvc",
	}
}

var metricNameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate 验证配置
func (c MetricsConfig) Validate() error {
	if c.Enabled && !metricNameRE.MatchString(c.Namespace) {
		return errors.New("metrics.namespace must match [a-zA-Z_][a-zA-Z0-9_]*")
	}
	return nil
}
