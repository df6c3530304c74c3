package altstore

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-altsvc/config"
)

// Params Store 依赖参数
type Params struct {
	fx.In

	Lifecycle  fx.Lifecycle
	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Module 是 altstore 的 Fx 模块
var Module = fx.Module("altstore",
	fx.Provide(NewFromParams),
)

// NewFromParams 从参数创建 Store，停止时清空
func NewFromParams(p Params) (*Store, error) {
	cfg := config.DefaultStoreConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Store
	}

	s, err := New(cfg.MaxOrigins, WithClock(p.Clock))
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.Purge()
			return nil
		},
	})
	return s, nil
}
