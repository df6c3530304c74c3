package eventbus

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-altsvc/pkg/types"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Module 返回 Fx 模块，提供备用服务变更事件总线
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideAlternativesBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideAlternativesBus 提供 EvtAlternativesChanged 事件总线
func ProvideAlternativesBus() *Bus[types.EvtAlternativesChanged] {
	return NewBus[types.EvtAlternativesChanged](Name("EvtAlternativesChanged"))
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC  fx.Lifecycle
	Bus *Bus[types.EvtAlternativesChanged]
}

// registerLifecycle 停止时关闭总线，订阅通道随之关闭
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			input.Bus.Close()
			return nil
		},
	})
}
