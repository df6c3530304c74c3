package eventbus

// defaultBufSize 订阅默认缓冲区大小
const defaultBufSize = 16

// subscriptionSettings 订阅设置
type subscriptionSettings struct {
	buffer int
}

// SubscriptionOpt 订阅选项
type SubscriptionOpt func(*subscriptionSettings)

// BufSize 设置订阅缓冲区大小
func BufSize(size int) SubscriptionOpt {
	return func(s *subscriptionSettings) {
		if size >= 0 {
			s.buffer = size
		}
	}
}

// busSettings 总线设置
type busSettings struct {
	stateful bool
	name     string
}

// BusOpt 总线选项
type BusOpt func(*busSettings)

// Stateful 保留最后一个事件，新订阅者立即收到
func Stateful() BusOpt {
	return func(s *busSettings) {
		s.stateful = true
	}
}

// Name 设置日志中显示的事件名
func Name(name string) BusOpt {
	return func(s *busSettings) {
		s.name = name
	}
}
