// Package altstore 按 origin 缓存备用服务列表
//
// 每个 origin 对应一个 AlternativeServiceInfoVector，写入即整体替换，
// 写入空列表等同于清除。读取时过滤掉已过期的条目，并把修剪结果写回。
// 超过容量时按 LRU 淘汰最久未使用的 origin。
//
// 所有方法都是并发安全的，读-改-写由内部互斥锁串行化。
package altstore
