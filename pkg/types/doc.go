// Package types 定义 go-altsvc 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，可以自由复制并在各模块间传递。
//
// # 文件组织
//
//   - protocol.go            - Protocol 封闭枚举与 token 映射
//   - quic_version.go        - QUICVersion、规范比较器、ALPN 映射
//   - alternative_service.go - AlternativeService, AlternativeServiceInfo, AlternativeServiceInfoVector
//   - entry.go               - AltSvcEntry（已解码的通告）, Origin
//   - enums.go               - AlternateProtocolUsage, BrokenAlternateProtocolLocation
//   - errors.go              - 公共错误定义
//
// # 不变量
//
// AlternativeServiceInfo 只有在协议为 QUIC 时才携带版本列表，
// 并且版本列表在任何构造路径下都按 CompareQUICVersions 排序。
package types
