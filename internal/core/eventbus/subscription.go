package eventbus

import "sync"

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription 订阅
type Subscription[T any] struct {
	bus       *Bus[T]
	out       chan T
	closeOnce sync.Once
}

// Out 返回事件通道，订阅或总线关闭后通道被关闭
func (s *Subscription[T]) Out() <-chan T {
	return s.out
}

// Close 取消订阅
//
// 并发安全，可以多次调用。通道中尚未读取的事件仍可读出。
func (s *Subscription[T]) Close() error {
	s.bus.removeSub(s)
	return nil
}
