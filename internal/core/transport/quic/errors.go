package quic

import "errors"

var (
	// ErrNotQUIC 备用服务不是 QUIC
	ErrNotQUIC = errors.New("alternative service is not QUIC")

	// ErrNoDialableVersion 没有 quic-go 支持的版本
	ErrNoDialableVersion = errors.New("no advertised QUIC version is dialable")
)
