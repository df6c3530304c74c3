package altstore

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-altsvc/internal/util/logger"
	"github.com/dep2p/go-altsvc/pkg/types"
)

var log = logger.Logger("altsvc/store")

// Store origin -> AlternativeServiceInfoVector
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache[types.Origin, types.AlternativeServiceInfoVector]
	clock clock.Clock
	log   *slog.Logger
}

// Option Store 选项
type Option func(*Store)

// WithClock 指定时钟
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger 指定日志
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New 创建最多容纳 maxOrigins 个 origin 的 Store
func New(maxOrigins int, opts ...Option) (*Store, error) {
	s := &Store{
		clock: clock.New(),
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.NewWithEvict(maxOrigins, func(origin types.Origin, _ types.AlternativeServiceInfoVector) {
		s.log.Debug("origin removed", "origin", origin.String())
	})
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

// Set 替换 origin 的备用服务列表，空列表清除该 origin
//
// 返回存储内容是否发生变化。
func (s *Store) Set(origin types.Origin, infos types.AlternativeServiceInfoVector) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, _ := s.cache.Peek(origin)
	changed := !prev.Equal(infos)

	if len(infos) == 0 {
		s.cache.Remove(origin)
		return changed
	}
	s.cache.Add(origin, slices.Clone(infos))
	return changed
}

// Get 返回 origin 当前有效的备用服务，顺序与写入时一致
//
// 读取时顺带丢弃已过期的条目；这类清理不计入 Prune 的结果。
func (s *Store) Get(origin types.Origin) types.AlternativeServiceInfoVector {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos, ok := s.cache.Get(origin)
	if !ok {
		return nil
	}

	live := infos.Unexpired(s.clock.Now())
	switch {
	case len(live) == 0:
		s.cache.Remove(origin)
		return nil
	case len(live) != len(infos):
		s.cache.Add(origin, live)
	}
	return slices.Clone(live)
}

// Clear 清除 origin，返回之前是否存在
func (s *Store) Clear(origin types.Origin) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(origin)
}

// PruneExpired 清理所有 origin 的过期条目，返回移除的条目数
func (s *Store) PruneExpired() int {
	removed, _ := s.Prune()
	return removed
}

// Prune 清理所有 origin 的过期条目
//
// 返回移除的条目数，以及内容发生变化的 origin 与其剩余列表；
// 整个 origin 被移除时对应的列表为 nil。
func (s *Store) Prune() (int, map[types.Origin]types.AlternativeServiceInfoVector) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	var changed map[types.Origin]types.AlternativeServiceInfoVector
	for _, origin := range s.cache.Keys() {
		infos, ok := s.cache.Peek(origin)
		if !ok {
			continue
		}
		live := infos.Unexpired(now)
		if len(live) == len(infos) {
			continue
		}
		removed += len(infos) - len(live)
		if changed == nil {
			changed = make(map[types.Origin]types.AlternativeServiceInfoVector)
		}
		if len(live) == 0 {
			s.cache.Remove(origin)
			changed[origin] = nil
		} else {
			s.cache.Add(origin, live)
			changed[origin] = slices.Clone(live)
		}
	}
	if removed > 0 {
		s.log.Debug("pruned expired alternative services", "count", removed, "origins", len(changed))
	}
	return removed, changed
}

// Origins 返回所有缓存的 origin，从最久未使用到最近使用
func (s *Store) Origins() []types.Origin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Keys()
}

// Len 返回缓存的 origin 数量
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Purge 清空缓存
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}
