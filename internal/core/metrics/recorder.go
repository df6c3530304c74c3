package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-altsvc/pkg/types"
)

// 条目处理结果
const (
	OutcomeAccepted            = "accepted"
	OutcomeInvalidProtocol     = "invalid_protocol"
	OutcomeDisabled            = "disabled"
	OutcomeNoCommonQUICVersion = "no_common_quic_version"
)

// Recorder 遥测接口
type Recorder interface {
	// RecordUsage 记录备用协议使用结果
	RecordUsage(usage types.AlternateProtocolUsage, wellKnownHost bool)

	// RecordBrokenLocation 记录发现备用服务不可用的位置
	RecordBrokenLocation(location types.BrokenAlternateProtocolLocation)

	// RecordEntry 记录单个通告条目的处理结果
	RecordEntry(protocol types.Protocol, outcome string)
}

var (
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = NopRecorder{}
)

// ============================================================================
//                              PrometheusRecorder
// ============================================================================

// PrometheusRecorder 基于 Prometheus 计数器的 Recorder
type PrometheusRecorder struct {
	usage   *prometheus.CounterVec
	broken  *prometheus.CounterVec
	entries *prometheus.CounterVec
}

// NewPrometheusRecorder 创建并注册计数器
//
// 同名计数器已注册时复用已有实例，因此同一个 Registerer 可以多次创建。
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		usage: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_usage_total",
			Help:      "Alternate protocol usage outcomes.",
		}, []string{"usage", "well_known_host"}),
		broken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broken_location_total",
			Help:      "Call sites that found a selected alternative service broken.",
		}, []string{"location"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advertised_entries_total",
			Help:      "Advertised alternative service entries by protocol and outcome.",
		}, []string{"protocol", "outcome"}),
	}

	// 任一计数器注册失败时撤销本次新注册的计数器，Registerer 保持调用前的状态
	var fresh []prometheus.Collector
	for _, c := range []**prometheus.CounterVec{&r.usage, &r.broken, &r.entries} {
		got, added, err := register(reg, *c)
		if err != nil {
			for _, f := range fresh {
				reg.Unregister(f)
			}
			return nil, err
		}
		if added {
			fresh = append(fresh, got)
		}
		*c = got
	}
	return r, nil
}

// register 注册计数器，added 表示是否为本次新注册
func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, bool, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return c, true, nil
}

// RecordUsage 实现 Recorder
func (r *PrometheusRecorder) RecordUsage(usage types.AlternateProtocolUsage, wellKnownHost bool) {
	r.usage.WithLabelValues(usage.String(), strconv.FormatBool(wellKnownHost)).Inc()
}

// RecordBrokenLocation 实现 Recorder
func (r *PrometheusRecorder) RecordBrokenLocation(location types.BrokenAlternateProtocolLocation) {
	r.broken.WithLabelValues(location.String()).Inc()
}

// RecordEntry 实现 Recorder
func (r *PrometheusRecorder) RecordEntry(protocol types.Protocol, outcome string) {
	r.entries.WithLabelValues(protocol.String(), outcome).Inc()
}

// ============================================================================
//                              NopRecorder
// ============================================================================

// NopRecorder 丢弃所有记录
type NopRecorder struct{}

// RecordUsage 实现 Recorder
func (NopRecorder) RecordUsage(types.AlternateProtocolUsage, bool) {}

// RecordBrokenLocation 实现 Recorder
func (NopRecorder) RecordBrokenLocation(types.BrokenAlternateProtocolLocation) {}

// RecordEntry 实现 Recorder
func (NopRecorder) RecordEntry(types.Protocol, string) {}
