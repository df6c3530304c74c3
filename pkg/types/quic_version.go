package types

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/quic-go/quic-go"
)

// ============================================================================
//                              QUICVersion - QUIC 版本
// ============================================================================

// QUICVersion QUIC 版本标识，取值即线上的 32 位版本标签
type QUICVersion uint32

// 已知的 QUIC 版本
const (
	// QUICVersionUnsupported 不表示任何版本
	QUICVersionUnsupported QUICVersion = 0

	// QUICVersionQ043 Google QUIC Q043
	QUICVersionQ043 QUICVersion = 0x51303433
	// QUICVersionQ046 Google QUIC Q046
	QUICVersionQ046 QUICVersion = 0x51303436
	// QUICVersionQ050 Google QUIC Q050
	QUICVersionQ050 QUICVersion = 0x51303530
	// QUICVersionDraft29 IETF draft-29
	QUICVersionDraft29 QUICVersion = 0xff00001d
	// QUICVersionRFCv1 RFC 9000
	QUICVersionRFCv1 = QUICVersion(quic.Version1)
	// QUICVersionRFCv2 RFC 9369
	QUICVersionRFCv2 = QUICVersion(quic.Version2)
)

// versionInfo 已知版本的名称、ALPN 与传输版本序号
type versionInfo struct {
	name    string
	alpn    string
	ordinal int
}

// 传输版本序号决定规范顺序，数值越小越靠前
var knownVersions = map[QUICVersion]versionInfo{
	QUICVersionQ043:    {name: "Q043", alpn: "h3-Q043", ordinal: 43},
	QUICVersionQ046:    {name: "Q046", alpn: "h3-Q046", ordinal: 46},
	QUICVersionQ050:    {name: "Q050", alpn: "h3-Q050", ordinal: 50},
	QUICVersionDraft29: {name: "draft29", alpn: "h3-29", ordinal: 73},
	QUICVersionRFCv1:   {name: "RFCv1", alpn: "h3", ordinal: 80},
	QUICVersionRFCv2:   {name: "RFCv2", ordinal: 82},
}

// String 返回版本名称，未知版本输出十六进制标签
func (v QUICVersion) String() string {
	if info, ok := knownVersions[v]; ok {
		return info.name
	}
	return fmt.Sprintf("0x%08x", uint32(v))
}

// IsKnown 检查是否为已知版本
func (v QUICVersion) IsKnown() bool {
	_, ok := knownVersions[v]
	return ok
}

// ALPN 返回版本对应的 ALPN，没有时返回空串
func (v QUICVersion) ALPN() string {
	return knownVersions[v].alpn
}

// ordinal 未知版本排在所有已知版本之后
func (v QUICVersion) ordinal() int {
	if info, ok := knownVersions[v]; ok {
		return info.ordinal
	}
	return math.MaxInt
}

// CompareQUICVersions 规范比较器
//
// 先按传输版本序号升序，序号相同（仅未知版本）时按标签数值升序。
// 这是一个全序，相同输入永远得到相同顺序。
func CompareQUICVersions(a, b QUICVersion) int {
	if c := cmp.Compare(a.ordinal(), b.ordinal()); c != 0 {
		return c
	}
	return cmp.Compare(uint32(a), uint32(b))
}

// SortQUICVersions 按规范比较器原地排序
func SortQUICVersions(versions []QUICVersion) {
	slices.SortStableFunc(versions, CompareQUICVersions)
}

// ParseQUICVersion 解析版本名称
//
// 接受 String() 的输出（"Q046"、"RFCv1"）、ALPN（"h3-29"）以及 "0x" 开头的十六进制标签。
func ParseQUICVersion(s string) (QUICVersion, error) {
	s = strings.TrimSpace(s)
	for v, info := range knownVersions {
		if strings.EqualFold(s, info.name) {
			return v, nil
		}
	}
	if v, ok := QUICVersionFromALPN(s); ok {
		return v, nil
	}
	var raw uint32
	if _, err := fmt.Sscanf(strings.ToLower(s), "0x%x", &raw); err == nil && raw != 0 {
		return QUICVersion(raw), nil
	}
	return QUICVersionUnsupported, fmt.Errorf("%w: %q", ErrUnknownQUICVersion, s)
}

// QUICVersionFromALPN 将 HTTP/3 ALPN 映射为 QUIC 版本，不区分大小写
func QUICVersionFromALPN(alpn string) (QUICVersion, bool) {
	if alpn == "" {
		return QUICVersionUnsupported, false
	}
	for v, info := range knownVersions {
		if info.alpn != "" && strings.EqualFold(info.alpn, alpn) {
			return v, true
		}
	}
	return QUICVersionUnsupported, false
}

// FormatQUICVersions 以空格分隔输出版本列表
func FormatQUICVersions(versions []QUICVersion) string {
	names := make([]string, len(versions))
	for i, v := range versions {
		names[i] = v.String()
	}
	return strings.Join(names, " ")
}
