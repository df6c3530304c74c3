package types

import (
	"cmp"
	"fmt"
	"net"
	"slices"
	"strconv"
	"time"
)

// ============================================================================
//                              AlternativeService
// ============================================================================

// AlternativeService (protocol, host, port) 三元组
//
// 零值为 {ProtocolUnknown, "", 0}。
type AlternativeService struct {
	Protocol Protocol
	Host     string
	Port     uint16
}

// NewAlternativeService 创建备用服务
func NewAlternativeService(protocol Protocol, host string, port uint16) AlternativeService {
	return AlternativeService{Protocol: protocol, Host: host, Port: port}
}

// HostPort 返回 host:port，IPv6 地址带方括号
func (s AlternativeService) HostPort() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(int(s.Port)))
}

// Equal 结构相等
func (s AlternativeService) Equal(other AlternativeService) bool {
	return s == other
}

// Compare 按 (protocol, host, port) 字典序比较
func (s AlternativeService) Compare(other AlternativeService) int {
	if c := cmp.Compare(s.Protocol, other.Protocol); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Host, other.Host); c != 0 {
		return c
	}
	return cmp.Compare(s.Port, other.Port)
}

// Less 报告 s 是否排在 other 之前
func (s AlternativeService) Less(other AlternativeService) bool {
	return s.Compare(other) < 0
}

// String 输出格式 "protocol host:port"，例如 "h2 www.example.com:443"
//
// 主机原样输出，IPv6 地址不加方括号；需要可拨号的地址时使用 HostPort。
func (s AlternativeService) String() string {
	return fmt.Sprintf("%s %s:%d", s.Protocol, s.Host, s.Port)
}

// ============================================================================
//                              AlternativeServiceInfo
// ============================================================================

// AlternativeServiceInfo 备用服务及其过期时间和 QUIC 版本
//
// 只有 QUIC 服务才会携带版本列表，列表始终按 CompareQUICVersions 排序。
// 值可以自由复制；访问器返回的切片都是副本。
type AlternativeServiceInfo struct {
	service    AlternativeService
	expiration time.Time

	// 服务器通告且本地支持的 QUIC 版本
	advertisedVersions []QUICVersion

	// 不透明的透传标志，仅参与相等比较
	protocolFilterOverride bool
}

// NewInfo 创建任意协议的备用服务信息（不含版本列表）
func NewInfo(service AlternativeService, expiration time.Time) AlternativeServiceInfo {
	return AlternativeServiceInfo{service: service, expiration: expiration}
}

// NewHTTP2Info 创建 HTTP/2 备用服务信息
func NewHTTP2Info(service AlternativeService, expiration time.Time) AlternativeServiceInfo {
	service.Protocol = ProtocolHTTP2
	return NewInfo(service, expiration)
}

// NewQUICInfo 创建 QUIC 备用服务信息，版本列表会被复制并排序
func NewQUICInfo(service AlternativeService, expiration time.Time, versions []QUICVersion) AlternativeServiceInfo {
	service.Protocol = ProtocolQUIC
	info := NewInfo(service, expiration)
	info.SetAdvertisedVersions(versions)
	return info
}

// AlternativeService 返回服务三元组
func (i AlternativeServiceInfo) AlternativeService() AlternativeService {
	return i.service
}

// Protocol 返回协议
func (i AlternativeServiceInfo) Protocol() Protocol {
	return i.service.Protocol
}

// HostPort 返回 host:port
func (i AlternativeServiceInfo) HostPort() string {
	return i.service.HostPort()
}

// Expiration 返回过期时间
func (i AlternativeServiceInfo) Expiration() time.Time {
	return i.expiration
}

// IsExpired 报告在 now 时刻是否已过期
func (i AlternativeServiceInfo) IsExpired(now time.Time) bool {
	return !i.expiration.After(now)
}

// AdvertisedVersions 返回版本列表副本
func (i AlternativeServiceInfo) AdvertisedVersions() []QUICVersion {
	return slices.Clone(i.advertisedVersions)
}

// ProtocolFilterOverride 返回透传标志
func (i AlternativeServiceInfo) ProtocolFilterOverride() bool {
	return i.protocolFilterOverride
}

// SetAlternativeService 替换服务三元组
//
// 切换为非 QUIC 协议时清空版本列表。
func (i *AlternativeServiceInfo) SetAlternativeService(service AlternativeService) {
	i.service = service
	if service.Protocol != ProtocolQUIC {
		i.advertisedVersions = nil
	}
}

// SetProtocol 设置协议
func (i *AlternativeServiceInfo) SetProtocol(protocol Protocol) {
	s := i.service
	s.Protocol = protocol
	i.SetAlternativeService(s)
}

// SetHost 设置主机
func (i *AlternativeServiceInfo) SetHost(host string) {
	i.service.Host = host
}

// SetPort 设置端口
func (i *AlternativeServiceInfo) SetPort(port uint16) {
	i.service.Port = port
}

// SetExpiration 设置过期时间
func (i *AlternativeServiceInfo) SetExpiration(expiration time.Time) {
	i.expiration = expiration
}

// SetAdvertisedVersions 设置版本列表
//
// 非 QUIC 服务上调用时静默忽略。设置后立即按规范顺序排序。
func (i *AlternativeServiceInfo) SetAdvertisedVersions(versions []QUICVersion) {
	if i.service.Protocol != ProtocolQUIC {
		return
	}
	if len(versions) == 0 {
		i.advertisedVersions = nil
		return
	}
	i.advertisedVersions = slices.Clone(versions)
	SortQUICVersions(i.advertisedVersions)
}

// SetProtocolFilterOverride 设置透传标志
func (i *AlternativeServiceInfo) SetProtocolFilterOverride(override bool) {
	i.protocolFilterOverride = override
}

// Equal 服务、过期时间、版本列表与透传标志全部相同时相等
//
// 过期时间使用 time.Time.Equal 比较，不受 monotonic 读数和时区影响。
func (i AlternativeServiceInfo) Equal(other AlternativeServiceInfo) bool {
	return i.service == other.service &&
		i.expiration.Equal(other.expiration) &&
		slices.Equal(i.advertisedVersions, other.advertisedVersions) &&
		i.protocolFilterOverride == other.protocolFilterOverride
}

// String 输出 "h2 example.com:443, expires 2026-01-02T15:04:05Z"，
// QUIC 追加 ", versions { RFCv1 RFCv2 }"
func (i AlternativeServiceInfo) String() string {
	s := fmt.Sprintf("%s, expires %s", i.service, i.expiration.UTC().Format(time.RFC3339))
	if i.service.Protocol == ProtocolQUIC {
		s += fmt.Sprintf(", versions { %s }", FormatQUICVersions(i.advertisedVersions))
	}
	return s
}

// ============================================================================
//                              AlternativeServiceInfoVector
// ============================================================================

// AlternativeServiceInfoVector 单个 origin 的备用服务列表，顺序即服务器偏好
type AlternativeServiceInfoVector []AlternativeServiceInfo

// Equal 逐项比较
func (v AlternativeServiceInfoVector) Equal(other AlternativeServiceInfoVector) bool {
	return slices.EqualFunc(v, other, AlternativeServiceInfo.Equal)
}

// Unexpired 返回在 now 时刻仍然有效的条目，保持原有顺序
func (v AlternativeServiceInfoVector) Unexpired(now time.Time) AlternativeServiceInfoVector {
	out := make(AlternativeServiceInfoVector, 0, len(v))
	for _, info := range v {
		if !info.IsExpired(now) {
			out = append(out, info)
		}
	}
	return out
}

// Strings 逐项渲染
func (v AlternativeServiceInfoVector) Strings() []string {
	out := make([]string, len(v))
	for i, info := range v {
		out[i] = info.String()
	}
	return out
}
