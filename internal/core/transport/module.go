package transport

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-altsvc/config"
	"github.com/dep2p/go-altsvc/internal/core/transport/quic"
	"github.com/dep2p/go-altsvc/internal/util/logger"
)

var log = logger.Logger("altsvc/transport")

// Params Configurer 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 返回 transport 的 Fx 模块
func Module() fx.Option {
	return fx.Module("transport",
		fx.Provide(NewConfigurerFromParams),
	)
}

// NewConfigurerFromParams 创建 QUIC Configurer
//
// 即使配置关闭了 QUIC 也会提供 Configurer，是否拨号由调用方决定。
func NewConfigurerFromParams(p Params) *quic.Configurer {
	if p.UnifiedCfg != nil && !p.UnifiedCfg.AltSvc.EnableQUIC {
		log.Debug("QUIC disabled; configurer provided for inspection only")
	}
	return quic.NewConfigurer(nil, nil)
}
