// Package metrics 提供备用服务的遥测钩子
//
// 遥测是旁路通道，不影响通告处理的返回值：
//   - RecordUsage: 一次请求的备用协议使用结果（按是否为知名主机分开统计）
//   - RecordBrokenLocation: 已选中的备用服务被发现不可用时的调用位置
//   - RecordEntry: 通告条目被采纳或被丢弃的原因
//
// # 实现
//
//   - PrometheusRecorder: 基于 prometheus/client_golang 的计数器
//   - NopRecorder: 空实现，关闭指标时使用
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module,
//	    fx.Invoke(func(r metrics.Recorder) {
//	        r.RecordUsage(types.UsageWonRace, false)
//	    }),
//	)
//
// # 并发安全
//
// 所有实现都是并发安全的，Prometheus 计数器使用原子操作。
package metrics
