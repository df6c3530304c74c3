package eventbus

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-altsvc/internal/util/logger"
)

var log = logger.Logger("altsvc/eventbus")

// ErrClosed 事件总线已关闭
var ErrClosed = errors.New("eventbus closed")

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 单一事件类型的事件总线
type Bus[T any] struct {
	mu     sync.Mutex
	name   string
	closed bool

	sinks    []*Subscription[T] // 订阅者列表
	keepLast bool               // 是否保持最后一个事件
	last     *T                 // 最后一个事件

	dropCount atomic.Int64 // 丢弃事件计数（用于慢消费者警告）
}

// NewBus 创建事件总线
func NewBus[T any](opts ...BusOpt) *Bus[T] {
	var settings busSettings
	for _, opt := range opts {
		opt(&settings)
	}
	name := settings.name
	if name == "" {
		var zero T
		name = fmt.Sprintf("%T", zero)
	}
	return &Bus[T]{name: name, keepLast: settings.stateful}
}

// Subscribe 订阅事件
func (b *Bus[T]) Subscribe(opts ...SubscriptionOpt) (*Subscription[T], error) {
	settings := subscriptionSettings{buffer: defaultBufSize}
	for _, opt := range opts {
		opt(&settings)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	sub := &Subscription[T]{bus: b, out: make(chan T, settings.buffer)}
	b.sinks = append(b.sinks, sub)

	if b.keepLast && b.last != nil {
		select {
		case sub.out <- *b.last:
		default:
		}
	}
	return sub, nil
}

// Emit 发射事件到所有订阅者，不阻塞
func (b *Bus[T]) Emit(event T) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	if b.keepLast {
		b.last = &event
	}

	for _, sub := range b.sinks {
		select {
		case sub.out <- event:
		default:
			dropped := b.dropCount.Add(1)

			// 每丢弃 100 个事件警告一次
			if dropped%100 == 1 {
				log.Warn("慢消费者检测",
					"dropped", dropped,
					"type", b.name,
					"reason", "subscriber buffer full")
			}
		}
	}
	return nil
}

// Subscribers 当前订阅者数量
func (b *Bus[T]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sinks)
}

// Dropped 累计丢弃的事件数
func (b *Bus[T]) Dropped() int64 {
	return b.dropCount.Load()
}

// Close 关闭总线并关闭所有订阅通道
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.sinks {
		sub.closeOnce.Do(func() { close(sub.out) })
	}
	b.sinks = nil
	b.last = nil
}

// removeSub 移除订阅
func (b *Bus[T]) removeSub(sub *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.sinks {
		if s == sub {
			b.sinks = append(b.sinks[:i], b.sinks[i+1:]...)
			break
		}
	}
	sub.closeOnce.Do(func() { close(sub.out) })
}
