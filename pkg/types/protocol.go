package types

import "strings"

// ============================================================================
//                              Protocol - 备用服务协议
// ============================================================================

// Protocol 备用服务可以使用的应用层协议
//
// 这是一个封闭枚举：新增协议时必须同步更新 String、ParseProtocol
// 以及 advert 包中的 IsValid / IsEnabled，编译器不会替你检查。
type Protocol int

const (
	// ProtocolUnknown 未知协议，永远不是合法的备用服务
	ProtocolUnknown Protocol = iota
	// ProtocolHTTP11 HTTP/1.1
	ProtocolHTTP11
	// ProtocolHTTP2 HTTP/2
	ProtocolHTTP2
	// ProtocolQUIC QUIC（含 HTTP/3）
	ProtocolQUIC

	// 预留给后续协议标识，追加在此处，不要重排已有取值
)

// 协议 token
const (
	TokenHTTP11 = "http/1.1"
	TokenHTTP2  = "h2"
	TokenQUIC   = "quic"
	TokenHTTP3  = "h3"
)

// String 返回协议的 token 表示
func (p Protocol) String() string {
	switch p {
	case ProtocolHTTP11:
		return TokenHTTP11
	case ProtocolHTTP2:
		return TokenHTTP2
	case ProtocolQUIC:
		return TokenQUIC
	default:
		return "unknown"
	}
}

// IsKnown 检查取值是否属于已定义的协议（含 ProtocolUnknown）
func (p Protocol) IsKnown() bool {
	switch p {
	case ProtocolUnknown, ProtocolHTTP11, ProtocolHTTP2, ProtocolQUIC:
		return true
	default:
		return false
	}
}

// ParseProtocol 将线上 token 映射为协议
//
// HTTP/3 的 ALPN（"h3"、"h3-29"、"h3-Q050" 等）映射为 ProtocolQUIC，
// 第二个返回值给出 ALPN 所指的具体 QUIC 版本（如果有）。
// 无法识别的 token 返回 ProtocolUnknown，不返回错误。
func ParseProtocol(token string) (Protocol, QUICVersion) {
	t := strings.TrimSpace(token)
	switch strings.ToLower(t) {
	case TokenHTTP11:
		return ProtocolHTTP11, QUICVersionUnsupported
	case TokenHTTP2:
		return ProtocolHTTP2, QUICVersionUnsupported
	case TokenQUIC:
		return ProtocolQUIC, QUICVersionUnsupported
	}
	if v, ok := QUICVersionFromALPN(t); ok {
		return ProtocolQUIC, v
	}
	return ProtocolUnknown, QUICVersionUnsupported
}
