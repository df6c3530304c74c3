package altsvc

import (
	"errors"

	"github.com/dep2p/go-altsvc/config"
	"github.com/dep2p/go-altsvc/internal/core/transport/quic"
	"github.com/dep2p/go-altsvc/pkg/types"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNegotiatorClosed Negotiator 已关闭
	ErrNegotiatorClosed = errors.New("negotiator closed")

	// ────────────────────────────────────────────────────────────────────────
	// 配置错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = config.ErrInvalidConfig

	// ErrUnknownQUICVersion 无法识别的 QUIC 版本名称
	ErrUnknownQUICVersion = types.ErrUnknownQUICVersion

	// ────────────────────────────────────────────────────────────────────────
	// 拨号配置错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotQUIC 备用服务不是 QUIC
	ErrNotQUIC = quic.ErrNotQUIC

	// ErrNoDialableVersion 没有 quic-go 支持的版本
	ErrNoDialableVersion = quic.ErrNoDialableVersion
)
