// Package eventbus 实现类型安全的进程内事件总线
//
// 每个 Bus 只承载一种事件类型。发射不阻塞：订阅者缓冲区满时事件被丢弃，
// 并按丢弃次数节流输出慢消费者警告。
//
// 有状态（Stateful）总线会保留最后一个事件，新订阅者立即收到它。
package eventbus
