package advert

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-altsvc/config"
	"github.com/dep2p/go-altsvc/internal/core/metrics"
)

// Params Processor 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config   `optional:"true"`
	Clock      clock.Clock      `optional:"true"`
	Recorder   metrics.Recorder `optional:"true"`
}

// Module 是 advert 的 Fx 模块
var Module = fx.Module("advert",
	fx.Provide(NewProcessorFromParams),
)

// NewProcessorFromParams 从参数创建 Processor
func NewProcessorFromParams(p Params) (*Processor, error) {
	cfg := config.DefaultAltSvcConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.AltSvc
	}
	policy, err := PolicyFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewProcessor(policy, WithClock(p.Clock), WithRecorder(p.Recorder)), nil
}
