// Package advert 处理服务器的 Alt-Svc 通告
//
// 输入是外部解析器解码好的通告条目，输出是经过策略过滤、QUIC 版本协商、
// 有效期计算后的 AlternativeServiceInfoVector，供缓存和连接选择使用。
//
// # 处理流程
//
// 对每个条目按输入顺序：
//  1. token 映射为 types.Protocol，无法识别的映射为 ProtocolUnknown
//  2. IsValid 为假则丢弃
//  3. IsEnabled 为假则丢弃
//  4. QUIC 条目与本地支持的版本求交集（保留服务器的顺序），交集为空则丢弃
//  5. 过期时间 = now + min(max-age, MaxLifetime)
//  6. 构造 AlternativeServiceInfo 追加到结果
//
// 结果保持输入顺序，不会重新排序。空结果是合法输出，表示没有可用的备用服务。
// 处理过程没有错误通道，所有拒绝都体现为从结果中省略。
//
// # 并发安全
//
// Process 和 Processor.Process 不持有共享可变状态，可以并发调用。
package advert
