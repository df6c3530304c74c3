package quic

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/dep2p/go-altsvc/pkg/types"
)

// DialableVersions quic-go 能够拨号的版本
func DialableVersions() []types.QUICVersion {
	return []types.QUICVersion{types.QUICVersionRFCv1, types.QUICVersionRFCv2}
}

// IsDialable 报告 quic-go 能否使用该版本
func IsDialable(v types.QUICVersion) bool {
	return v == types.QUICVersionRFCv1 || v == types.QUICVersionRFCv2
}

// DefaultQUICConfig 默认的 quic-go 配置
func DefaultQUICConfig() *quic.Config {
	return &quic.Config{
		HandshakeIdleTimeout: 5 * time.Second,
		MaxIdleTimeout:       30 * time.Second,
		KeepAlivePeriod:      15 * time.Second,
	}
}

// Configurer 基于基础配置生成每个备用服务的拨号配置
type Configurer struct {
	baseQUIC *quic.Config
	baseTLS  *tls.Config
}

// NewConfigurer 创建 Configurer，参数为 nil 时使用默认值
func NewConfigurer(baseQUIC *quic.Config, baseTLS *tls.Config) *Configurer {
	if baseQUIC == nil {
		baseQUIC = DefaultQUICConfig()
	}
	if baseTLS == nil {
		baseTLS = &tls.Config{MinVersion: tls.VersionTLS13}
	}
	return &Configurer{baseQUIC: baseQUIC, baseTLS: baseTLS}
}

// QUICConfig 返回 Versions 仅包含可拨号版本的配置，顺序沿用 info 的规范顺序
func (c *Configurer) QUICConfig(info types.AlternativeServiceInfo) (*quic.Config, error) {
	versions, err := dialable(info)
	if err != nil {
		return nil, err
	}
	conf := c.baseQUIC.Clone()
	conf.Versions = make([]quic.Version, len(versions))
	for i, v := range versions {
		conf.Versions[i] = quic.Version(v)
	}
	return conf, nil
}

// TLSConfig 返回 ServerName 为备用主机、NextProtos 为版本 ALPN 的配置
//
// 备用主机为空时 serverName 作为 SNI。
func (c *Configurer) TLSConfig(info types.AlternativeServiceInfo, serverName string) (*tls.Config, error) {
	versions, err := dialable(info)
	if err != nil {
		return nil, err
	}
	conf := c.baseTLS.Clone()
	if host := info.AlternativeService().Host; host != "" {
		serverName = host
	}
	conf.ServerName = serverName

	var protos []string
	seen := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		alpn := v.ALPN()
		if alpn == "" {
			alpn = types.TokenHTTP3
		}
		if _, dup := seen[alpn]; dup {
			continue
		}
		seen[alpn] = struct{}{}
		protos = append(protos, alpn)
	}
	conf.NextProtos = protos
	return conf, nil
}

// DialConfig 同时返回 quic-go 与 TLS 配置
func (c *Configurer) DialConfig(info types.AlternativeServiceInfo, serverName string) (*quic.Config, *tls.Config, error) {
	qconf, err := c.QUICConfig(info)
	if err != nil {
		return nil, nil, err
	}
	tconf, err := c.TLSConfig(info, serverName)
	if err != nil {
		return nil, nil, err
	}
	return qconf, tconf, nil
}

func dialable(info types.AlternativeServiceInfo) ([]types.QUICVersion, error) {
	if info.Protocol() != types.ProtocolQUIC {
		return nil, fmt.Errorf("%w: %s", ErrNotQUIC, info.AlternativeService())
	}
	var out []types.QUICVersion
	for _, v := range info.AdvertisedVersions() {
		if IsDialable(v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDialableVersion, types.FormatQUICVersions(info.AdvertisedVersions()))
	}
	return out, nil
}
