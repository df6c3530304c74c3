package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/dep2p/go-altsvc/pkg/types"
)

// DefaultMaxLifetime 通告有效期上限，限制过期或恶意通告被采信的时长
const DefaultMaxLifetime = 30 * 24 * time.Hour

// AltSvcConfig 通告处理策略
type AltSvcConfig struct {
	// EnableHTTP2 HTTP/2 运行时开关
	EnableHTTP2 bool `json:"enable_http2"`

	// EnableQUIC QUIC 运行时开关
	EnableQUIC bool `json:"enable_quic"`

	// SupportedQUICVersions 本地支持的 QUIC 版本，取值见 types.ParseQUICVersion
	SupportedQUICVersions []string `json:"supported_quic_versions"`

	// MaxLifetime max-age 的上限
	MaxLifetime Duration `json:"max_lifetime"`
}

// DefaultAltSvcConfig 返回默认配置
//
// 默认支持的版本即 quic-go 能够拨号的版本。
func DefaultAltSvcConfig() AltSvcConfig {
	return AltSvcConfig{
		EnableHTTP2: true,
		EnableQUIC:  true,
		SupportedQUICVersions: []string{
			types.QUICVersionRFCv1.String(),
			types.QUICVersionRFCv2.String(),
		},
		MaxLifetime: Duration(DefaultMaxLifetime),
	}
}

// QUICVersions 解析 SupportedQUICVersions，保持配置顺序并去重
func (c AltSvcConfig) QUICVersions() ([]types.QUICVersion, error) {
	out := make([]types.QUICVersion, 0, len(c.SupportedQUICVersions))
	seen := make(map[types.QUICVersion]struct{}, len(c.SupportedQUICVersions))
	for _, s := range c.SupportedQUICVersions {
		v, err := types.ParseQUICVersion(s)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Validate 验证配置
func (c AltSvcConfig) Validate() error {
	var err error
	if c.MaxLifetime <= 0 {
		err = multierr.Append(err, fmt.Errorf("altsvc.max_lifetime must be positive, got %s", c.MaxLifetime))
	}
	if _, verr := c.QUICVersions(); verr != nil {
		err = multierr.Append(err, fmt.Errorf("altsvc.supported_quic_versions: %w", verr))
	}
	if c.EnableQUIC && len(c.SupportedQUICVersions) == 0 {
		err = multierr.Append(err, errors.New("altsvc.supported_quic_versions is empty while QUIC is enabled"))
	}
	return err
}
