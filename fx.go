package altsvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dep2p/go-altsvc/internal/core/advert"
	"github.com/dep2p/go-altsvc/internal/core/altstore"
	"github.com/dep2p/go-altsvc/internal/core/eventbus"
	"github.com/dep2p/go-altsvc/internal/core/metrics"
	"github.com/dep2p/go-altsvc/internal/core/transport"
	"github.com/dep2p/go-altsvc/internal/util/logger"
)

var fxLogger = logger.Logger("altsvc/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 配置与时间源
//  2. EventBus → Metrics → Advert → AltStore → Transport
//  3. 用户扩展
func buildFxApp(o *options, n *Negotiator) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	cfg := o.toConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	clk := o.clock
	if clk == nil {
		clk = clock.New()
	}

	modules := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(func() clock.Clock { return clk }),
	}
	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 核心模块
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		eventbus.Module(),
		metrics.Module,
		advert.Module,
		altstore.Module,
		transport.Module(),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 3. 用户扩展
	// ════════════════════════════════════════════════════════════════════════
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 4. 组件注入与 Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		fx.Populate(&n.processor, &n.store, &n.recorder, &n.dialer, &n.events),
		fx.WithLogger(func() fxevent.Logger { return fxEventLogger(o) }),
	)

	fxLogger.Debug("构建 Fx 应用", "modules", len(modules), "metrics", cfg.Metrics.Enabled)
	return fx.New(modules...), nil
}

// fxEventLogger 返回 Fx 生命周期事件日志
//
// 优先使用 WithZapLogger 传入的 Logger；否则 altsvc/fx 子系统处于 Debug
// 级别时写入子系统日志的输出目标（见 logger.SetOutput），其余情况丢弃。
func fxEventLogger(o *options) fxevent.Logger {
	zl := o.zapLogger
	if zl == nil {
		if fxLogger.Enabled(context.Background(), slog.LevelDebug) {
			zl = zap.New(zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(logger.Writer()),
				zapcore.DebugLevel,
			)).Named("altsvc/fx")
		} else {
			zl = zap.NewNop()
		}
	}
	return &fxevent.ZapLogger{Logger: zl}
}
