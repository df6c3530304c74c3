package altsvc

import (
	"context"
	"crypto/tls"
	"fmt"
	"slices"
	"sync"
	"time"

	quicgo "github.com/quic-go/quic-go"
	"go.uber.org/fx"

	"github.com/dep2p/go-altsvc/internal/core/advert"
	"github.com/dep2p/go-altsvc/internal/core/altstore"
	"github.com/dep2p/go-altsvc/internal/core/eventbus"
	"github.com/dep2p/go-altsvc/internal/core/metrics"
	"github.com/dep2p/go-altsvc/internal/core/transport/quic"
	"github.com/dep2p/go-altsvc/internal/util/logger"
	"github.com/dep2p/go-altsvc/pkg/types"
)

var log = logger.Logger("altsvc")

const (
	// startTimeout Fx 应用启动超时
	startTimeout = 10 * time.Second

	// stopTimeout Fx 应用停止超时
	stopTimeout = 5 * time.Second
)

// ════════════════════════════════════════════════════════════════════════════
//                              Negotiator
// ════════════════════════════════════════════════════════════════════════════

// Negotiator 备用服务协商门面
//
// 所有方法并发安全。Close 之后除 Close 外的方法返回 ErrNegotiatorClosed。
type Negotiator struct {
	mu     sync.RWMutex
	closed bool

	// writeMu 串行化存储写入与对应事件的发出，保证事件顺序与存储一致
	writeMu sync.Mutex

	app *fx.App

	// 由 Fx 注入
	processor *advert.Processor
	store     *altstore.Store
	recorder  metrics.Recorder
	dialer    *quic.Configurer
	events    *eventbus.Bus[types.EvtAlternativesChanged]
}

// Subscription 备用服务变更订阅
type Subscription interface {
	// Out 事件通道，Close 或 Negotiator 关闭后被关闭
	Out() <-chan types.EvtAlternativesChanged
	Close() error
}

// New 创建并启动 Negotiator
//
// 示例：
//
//	n, err := altsvc.New(ctx,
//	    altsvc.WithConfig(cfg),
//	    altsvc.WithRegisterer(prometheus.DefaultRegisterer),
//	)
func New(ctx context.Context, opts ...Option) (*Negotiator, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	n := &Negotiator{}
	app, err := buildFxApp(o, n)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	n.app = app

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Error("Negotiator 启动失败", "error", err)
		return nil, fmt.Errorf("start: %w", err)
	}

	policy := n.processor.Policy()
	log.Info("Negotiator 已启动",
		"http2", policy.HTTP2Enabled,
		"quic", policy.QUICEnabled,
		"versions", types.FormatQUICVersions(policy.SupportedQUICVersions))
	return n, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              通告处理
// ════════════════════════════════════════════════════════════════════════════

// HandleAdvertisement 处理 origin 的一次 Alt-Svc 通告
//
// 主机为空的记录指向 origin 自身的主机。处理结果整体替换该 origin
// 之前的列表；结果为空时清除该 origin。返回值是存入的列表副本。
func (n *Negotiator) HandleAdvertisement(origin types.Origin, entries []types.AltSvcEntry) (types.AlternativeServiceInfoVector, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return nil, ErrNegotiatorClosed
	}

	resolved := make([]types.AltSvcEntry, len(entries))
	for i, e := range entries {
		if e.Host == "" {
			e.Host = origin.Host
		}
		resolved[i] = e
	}

	infos := n.processor.Process(resolved)
	n.writeMu.Lock()
	if n.store.Set(origin, infos) {
		n.emit(origin, infos)
	}
	n.writeMu.Unlock()
	log.Debug("通告已处理", "origin", origin, "received", len(entries), "accepted", len(infos))
	return infos, nil
}

// Alternatives 返回 origin 当前未过期的备用服务，按服务器偏好排序
func (n *Negotiator) Alternatives(origin types.Origin) (types.AlternativeServiceInfoVector, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return nil, ErrNegotiatorClosed
	}
	return n.store.Get(origin), nil
}

// ClearAlternatives 清除 origin 的备用服务（例如收到 Alt-Svc: clear）
func (n *Negotiator) ClearAlternatives(origin types.Origin) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrNegotiatorClosed
	}
	n.writeMu.Lock()
	defer n.writeMu.Unlock()
	if n.store.Clear(origin) {
		n.emit(origin, nil)
	}
	return nil
}

// PruneExpired 清除所有已过期条目，返回移除的条目数
//
// 每个内容发生变化的 origin 发出一个变更事件。
func (n *Negotiator) PruneExpired() (int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return 0, ErrNegotiatorClosed
	}

	n.writeMu.Lock()
	defer n.writeMu.Unlock()
	removed, changed := n.store.Prune()
	for origin, infos := range changed {
		n.emit(origin, infos)
	}
	return removed, nil
}

// Subscribe 订阅备用服务变更
//
// HandleAdvertisement 改变了存储内容、ClearAlternatives 清除了 origin
// 或 PruneExpired 移除了过期条目时发出事件。Alternatives 读取时丢弃
// 过期条目不发出事件，订阅者应依据事件中的过期时间自行判断有效性。
// 同一 origin 的事件顺序与存储的写入顺序一致；订阅者读取过慢时事件被丢弃。
func (n *Negotiator) Subscribe(bufSize int) (Subscription, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return nil, ErrNegotiatorClosed
	}
	sub, err := n.events.Subscribe(eventbus.BufSize(bufSize))
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (n *Negotiator) emit(origin types.Origin, infos types.AlternativeServiceInfoVector) {
	evt := types.EvtAlternativesChanged{Origin: origin, Alternatives: slices.Clone(infos)}
	if err := n.events.Emit(evt); err != nil {
		log.Debug("变更事件未发出", "origin", origin, "error", err)
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              QUIC 拨号配置
// ════════════════════════════════════════════════════════════════════════════

// QUICConfig 返回拨号 QUIC 备用服务所用的 quic-go 配置
func (n *Negotiator) QUICConfig(info types.AlternativeServiceInfo) (*quicgo.Config, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return nil, ErrNegotiatorClosed
	}
	return n.dialer.QUICConfig(info)
}

// DialConfig 返回 quic-go 与 TLS 配置，备用主机为空时以 origin 主机作为 SNI
func (n *Negotiator) DialConfig(origin types.Origin, info types.AlternativeServiceInfo) (*quicgo.Config, *tls.Config, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return nil, nil, ErrNegotiatorClosed
	}
	return n.dialer.DialConfig(info, origin.Host)
}

// ════════════════════════════════════════════════════════════════════════════
//                              遥测
// ════════════════════════════════════════════════════════════════════════════

// RecordUsage 记录一次协议使用结果
func (n *Negotiator) RecordUsage(usage types.AlternateProtocolUsage, wellKnownHost bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	n.recorder.RecordUsage(usage, wellKnownHost)
}

// RecordBroken 记录备用服务被标记为失败的位置
func (n *Negotiator) RecordBroken(location types.BrokenAlternateProtocolLocation) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	n.recorder.RecordBrokenLocation(location)
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期
// ════════════════════════════════════════════════════════════════════════════

// Close 停止 Fx 应用并清空缓存，重复调用返回 nil
func (n *Negotiator) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := n.app.Stop(ctx); err != nil {
		log.Warn("Negotiator 停止失败", "error", err)
		return fmt.Errorf("stop: %w", err)
	}
	log.Info("Negotiator 已关闭")
	return nil
}
