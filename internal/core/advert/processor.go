package advert

import (
	"log/slog"
	"slices"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-altsvc/internal/core/metrics"
	"github.com/dep2p/go-altsvc/internal/util/logger"
	"github.com/dep2p/go-altsvc/pkg/types"
)

var log = logger.Logger("altsvc/advert")

// Processor 绑定了策略、时钟和遥测的通告处理器
//
// Processor 创建后不可变，可以在多个 goroutine 间共享。
type Processor struct {
	policy   Policy
	clock    clock.Clock
	recorder metrics.Recorder
	log      *slog.Logger
}

// Option Processor 选项
type Option func(*Processor)

// WithClock 指定时钟（测试中使用 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(p *Processor) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithRecorder 指定遥测
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Processor) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithLogger 指定日志
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// NewProcessor 创建处理器
func NewProcessor(policy Policy, opts ...Option) *Processor {
	policy.SupportedQUICVersions = slices.Clone(policy.SupportedQUICVersions)
	p := &Processor{
		policy:   policy,
		clock:    clock.New(),
		recorder: metrics.NopRecorder{},
		log:      log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Policy 返回策略副本
func (p *Processor) Policy() Policy {
	policy := p.policy
	policy.SupportedQUICVersions = slices.Clone(p.policy.SupportedQUICVersions)
	return policy
}

// Now 返回处理器时钟的当前时间
func (p *Processor) Now() time.Time {
	return p.clock.Now()
}

// Process 以当前时间处理通告
func (p *Processor) Process(entries []types.AltSvcEntry) types.AlternativeServiceInfoVector {
	result := process(entries, p.policy, p.clock.Now(), p.observe)
	p.log.Debug("processed alt-svc advertisement",
		"advertised", len(entries),
		"usable", len(result))
	return result
}

func (p *Processor) observe(entry types.AltSvcEntry, protocol types.Protocol, outcome string) {
	p.recorder.RecordEntry(protocol, outcome)
	if outcome == metrics.OutcomeAccepted {
		return
	}
	p.log.Debug("alt-svc entry dropped",
		"protocol_id", entry.ProtocolID,
		"host", entry.Host,
		"port", entry.Port,
		"versions", types.FormatQUICVersions(entry.Versions),
		"reason", outcome)
}
