package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dep2p/go-altsvc/config"
	"github.com/dep2p/go-altsvc/pkg/types"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// 环境变量
const (
	envEnableHTTP2  = "ALTSVC_ENABLE_HTTP2"
	envEnableQUIC   = "ALTSVC_ENABLE_QUIC"
	envQUICVersions = "ALTSVC_QUIC_VERSIONS"
	envMaxLifetime  = "ALTSVC_MAX_LIFETIME"
	envMaxOrigins   = "ALTSVC_MAX_ORIGINS"
)

// buildConfig 构建配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（ALTSVC_* 前缀）
//  3. 配置文件
//  4. 默认值
func (c *cli) buildConfig(f *flags) (*config.Config, error) {
	cfg := config.NewConfig()
	if f.configFile != "" {
		data, err := os.ReadFile(f.configFile) //nolint:gosec // 用户指定的配置文件路径
		if err != nil {
			return nil, err
		}
		if cfg, err = config.FromJSON(data); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg, c.getenv); err != nil {
		return nil, err
	}

	if f.isSet("enable-h2") {
		cfg.AltSvc.EnableHTTP2 = f.enableHTTP2
	}
	if f.isSet("enable-quic") {
		cfg.AltSvc.EnableQUIC = f.enableQUIC
	}
	if f.isSet("quic-versions") {
		cfg.AltSvc.SupportedQUICVersions = splitAndTrim(f.versions, ",")
	}
	if f.isSet("max-lifetime") {
		cfg.AltSvc.MaxLifetime = config.Duration(f.maxLifetime)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 应用环境变量覆盖配置
//
// 支持的环境变量：
//   - ALTSVC_ENABLE_HTTP2: 允许 HTTP/2
//   - ALTSVC_ENABLE_QUIC: 允许 QUIC
//   - ALTSVC_QUIC_VERSIONS: 支持的 QUIC 版本（逗号分隔）
//   - ALTSVC_MAX_LIFETIME: 有效期上限，例如 "720h"
//   - ALTSVC_MAX_ORIGINS: 缓存的 origin 数上限
func applyEnvOverrides(cfg *config.Config, getenv func(string) string) error {
	if v := getenv(envEnableHTTP2); v != "" {
		cfg.AltSvc.EnableHTTP2 = parseBool(v)
	}
	if v := getenv(envEnableQUIC); v != "" {
		cfg.AltSvc.EnableQUIC = parseBool(v)
	}
	if v := getenv(envQUICVersions); v != "" {
		cfg.AltSvc.SupportedQUICVersions = splitAndTrim(v, ",")
	}
	if v := getenv(envMaxLifetime); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxLifetime, err)
		}
		cfg.AltSvc.MaxLifetime = config.Duration(d)
	}
	if v := getenv(envMaxOrigins); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxOrigins, err)
		}
		cfg.Store.MaxOrigins = n
	}
	return nil
}

// ============================================================================
//                              记录文件
// ============================================================================

// recordJSON 记录文件中的单条 Alt-Svc 记录
//
//	{"protocol": "quic", "host": "alt.example.com", "port": 443,
//	 "max_age": "24h", "versions": ["RFCv1", "0x709a50c4"]}
type recordJSON struct {
	Protocol string          `json:"protocol"`
	Host     string          `json:"host"`
	Port     uint16          `json:"port"`
	MaxAge   config.Duration `json:"max_age"`
	Versions []string        `json:"versions"`
}

// toEntry 转换为解码后的 Alt-Svc 条目
//
// 无法识别的 QUIC 版本被跳过，与服务器通告未知版本时的处理一致；
// 条目是否可用由协商阶段的版本交集决定。
func (r recordJSON) toEntry() types.AltSvcEntry {
	entry := types.AltSvcEntry{
		ProtocolID: r.Protocol,
		Host:       r.Host,
		Port:       r.Port,
		MaxAge:     r.MaxAge.Duration(),
	}
	for _, name := range r.Versions {
		v, err := types.ParseQUICVersion(name)
		if err != nil {
			log.Debug("跳过未知 QUIC 版本", "protocol", r.Protocol, "version", name, "err", err)
			continue
		}
		entry.Versions = append(entry.Versions, v)
	}
	return entry
}

// readRecords 读取记录文件，path 为 "-" 时读取标准输入
func (c *cli) readRecords(path string) ([]types.AltSvcEntry, error) {
	var data []byte
	var err error
	if path == "-" || path == "" {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // 用户指定的记录文件路径
	}
	if err != nil {
		return nil, err
	}

	var records []recordJSON
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}

	entries := make([]types.AltSvcEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.toEntry())
	}
	return entries, nil
}

// ============================================================================
//                              辅助函数
// ============================================================================

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// splitAndTrim 分割字符串并去除空白
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
