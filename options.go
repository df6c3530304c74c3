package altsvc

import (
	"errors"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dep2p/go-altsvc/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 统一配置，nil 时使用 config.NewConfig()
	config *config.Config

	// 时间源
	clock clock.Clock

	// 指标注册器，nil 时使用独立 Registry
	registerer prometheus.Registerer

	// Fx 生命周期事件日志，nil 时跟随 altsvc/fx 子系统级别
	zapLogger *zap.Logger

	// 用户扩展
	userFxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// toConfig 返回生效的配置
func (o *options) toConfig() *config.Config {
	if o.config != nil {
		return o.config
	}
	return config.NewConfig()
}

// WithConfig 使用完整配置
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		o.config = cfg
		return nil
	}
}

// WithClock 设置时间源，测试中传入 clock.NewMock()
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		o.clock = c
		return nil
	}
}

// WithRegisterer 将指标注册到指定的 Registerer
//
// 传入 prometheus.DefaultRegisterer 可通过默认 /metrics 暴露。
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = reg
		return nil
	}
}

// WithZapLogger 将 Fx 生命周期事件（provide、invoke、start、stop）写入指定 Logger
func WithZapLogger(l *zap.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return errors.New("zap logger is nil")
		}
		o.zapLogger = l
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
