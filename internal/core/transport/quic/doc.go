// Package quic 把协商好的 QUIC 备用服务转换为 quic-go 配置
//
// 本包不做任何网络 I/O，只负责：
//   - 从 AlternativeServiceInfo 的版本列表中挑出 quic-go 能够拨号的版本
//   - 生成带 Versions 的 *quic.Config 与带 ALPN、SNI 的 *tls.Config
//
// # 使用示例
//
//	c := quic.NewConfigurer(nil, nil)
//	qconf, tconf, err := c.DialConfig(info)
//	if err != nil {
//	    // 不是 QUIC，或者没有 quic-go 支持的版本
//	}
//	conn, err := quic.DialAddr(ctx, info.HostPort(), tconf, qconf)
package quic
