package types

import "errors"

var (
	// ErrUnknownQUICVersion 无法识别的 QUIC 版本名称
	ErrUnknownQUICVersion = errors.New("unknown QUIC version")

	// ErrInvalidOrigin 无效的 origin
	ErrInvalidOrigin = errors.New("invalid origin")
)
