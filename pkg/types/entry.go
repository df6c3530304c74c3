package types

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
//                              AltSvcEntry - 通告原始条目
// ============================================================================

// AltSvcEntry 已由外部解析器解码的单条 Alt-Svc 通告
type AltSvcEntry struct {
	// ProtocolID 线上协议 token，例如 "h2"、"quic"、"h3-29"
	ProtocolID string

	// Host 备用主机，为空表示与 origin 相同
	Host string

	// Port 备用端口
	Port uint16

	// MaxAge 通告的有效期
	MaxAge time.Duration

	// Versions 服务器按偏好顺序列出的 QUIC 版本
	Versions []QUICVersion
}

// ============================================================================
//                              Origin
// ============================================================================

// Origin (scheme, host, port)，备用服务缓存的键
type Origin struct {
	Scheme string
	Host   string
	Port   uint16
}

// NewOrigin 创建 origin，scheme 与 host 统一为小写
func NewOrigin(scheme, host string, port uint16) Origin {
	return Origin{
		Scheme: strings.ToLower(scheme),
		Host:   strings.ToLower(host),
		Port:   port,
	}
}

// ParseOrigin 解析 "https://example.com:443" 形式的 origin
//
// 省略端口时 https 取 443，http 取 80。
func ParseOrigin(s string) (Origin, error) {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok || scheme == "" || rest == "" {
		return Origin{}, fmt.Errorf("%w: %q", ErrInvalidOrigin, s)
	}
	rest = strings.TrimSuffix(rest, "/")

	host, portStr, err := net.SplitHostPort(rest)
	if err != nil {
		host, portStr = strings.Trim(rest, "[]"), ""
	}
	if host == "" {
		return Origin{}, fmt.Errorf("%w: %q", ErrInvalidOrigin, s)
	}

	var port uint16
	switch {
	case portStr != "":
		p, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return Origin{}, fmt.Errorf("%w: %q: %v", ErrInvalidOrigin, s, err)
		}
		port = uint16(p)
	case strings.EqualFold(scheme, "https"):
		port = 443
	case strings.EqualFold(scheme, "http"):
		port = 80
	default:
		return Origin{}, fmt.Errorf("%w: missing port in %q", ErrInvalidOrigin, s)
	}
	return NewOrigin(scheme, host, port), nil
}

// String 返回 "scheme://host:port"
func (o Origin) String() string {
	return o.Scheme + "://" + net.JoinHostPort(o.Host, strconv.Itoa(int(o.Port)))
}
