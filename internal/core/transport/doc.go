// Package transport 提供备用服务拨号所需的传输配置
//
// 子包 quic 负责把 QUIC 备用服务映射为 quic-go 配置。
// 本包只提供 Fx 模块，不包含连接或监听逻辑。
package transport
