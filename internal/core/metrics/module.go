package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-altsvc/config"
)

// Params Recorder 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewRecorderFromParams),
)

// NewRecorderFromParams 按配置创建 Recorder
//
// 指标关闭时返回 NopRecorder；未注入 Registerer 时注册到独立的 Registry。
func NewRecorderFromParams(p Params) (Recorder, error) {
	cfg := config.DefaultMetricsConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Metrics
	}
	if !cfg.Enabled {
		return NopRecorder{}, nil
	}

	reg := p.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return NewPrometheusRecorder(reg, cfg.Namespace)
}
