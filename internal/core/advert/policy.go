package advert

import (
	"fmt"
	"time"

	"github.com/dep2p/go-altsvc/config"
	"github.com/dep2p/go-altsvc/pkg/types"
)

// IsValid 报告协议能否作为备用服务，只有 ProtocolUnknown 和未定义的取值不能
func IsValid(protocol types.Protocol) bool {
	switch protocol {
	case types.ProtocolUnknown:
		return false
	case types.ProtocolHTTP11, types.ProtocolHTTP2, types.ProtocolQUIC:
		return true
	default:
		return false
	}
}

// IsEnabled 报告协议是否被运行时开关允许
//
// 只有拥有独立开关的协议受控，其他协议默认放行，
// 新增协议时不需要同步修改这里。
func IsEnabled(protocol types.Protocol, http2Enabled, quicEnabled bool) bool {
	switch protocol {
	case types.ProtocolHTTP2:
		return http2Enabled
	case types.ProtocolQUIC:
		return quicEnabled
	default:
		return true
	}
}

// Policy 通告处理策略
type Policy struct {
	HTTP2Enabled          bool
	QUICEnabled           bool
	SupportedQUICVersions []types.QUICVersion

	// MaxLifetime max-age 上限，非正数时使用 config.DefaultMaxLifetime
	MaxLifetime time.Duration
}

// DefaultPolicy 与 config.DefaultAltSvcConfig 一致的策略
func DefaultPolicy() Policy {
	p, _ := PolicyFromConfig(config.DefaultAltSvcConfig())
	return p
}

// PolicyFromConfig 从配置构造策略
func PolicyFromConfig(cfg config.AltSvcConfig) (Policy, error) {
	versions, err := cfg.QUICVersions()
	if err != nil {
		return Policy{}, fmt.Errorf("build policy: %w", err)
	}
	return Policy{
		HTTP2Enabled:          cfg.EnableHTTP2,
		QUICEnabled:           cfg.EnableQUIC,
		SupportedQUICVersions: versions,
		MaxLifetime:           cfg.MaxLifetime.Duration(),
	}, nil
}

// lifetime 返回封顶后的有效期，负的 max-age 视为 0
func (p Policy) lifetime(maxAge time.Duration) time.Duration {
	limit := p.MaxLifetime
	if limit <= 0 {
		limit = config.DefaultMaxLifetime
	}
	return max(0, min(maxAge, limit))
}
