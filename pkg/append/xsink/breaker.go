package xsink

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/omeyang/logkit/pkg/core/xrecord"
	"github.com/omeyang/logkit/pkg/observability/xdiag"
)

// 熔断默认参数
const (
	// DefaultBreakerFailures 连续失败多少次后熔断
	DefaultBreakerFailures = 5

	// DefaultBreakerTimeout Open 状态恢复到 HalfOpen 的等待时间
	DefaultBreakerTimeout = 30 * time.Second

	// DefaultBreakerMaxRequests HalfOpen 状态放行的探测请求数
	DefaultBreakerMaxRequests = 1
)

// breakerConfig 熔断配置
type breakerConfig struct {
	name        string
	failures    uint32
	timeout     time.Duration
	maxRequests uint32
	diag        *xdiag.Diagnostics
}

// BreakerOption 熔断配置选项
type BreakerOption func(*breakerConfig)

// WithBreakerName 设置熔断器名称（用于诊断）
func WithBreakerName(name string) BreakerOption {
	return func(c *breakerConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithBreakerFailures 设置触发熔断的连续失败次数
func WithBreakerFailures(n uint32) BreakerOption {
	return func(c *breakerConfig) {
		if n > 0 {
			c.failures = n
		}
	}
}

// WithBreakerTimeout 设置 Open 状态的恢复等待时间
func WithBreakerTimeout(d time.Duration) BreakerOption {
	return func(c *breakerConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBreakerMaxRequests 设置 HalfOpen 状态放行的探测请求数
func WithBreakerMaxRequests(n uint32) BreakerOption {
	return func(c *breakerConfig) {
		if n > 0 {
			c.maxRequests = n
		}
	}
}

// WithBreakerDiagnostics 接入错误通道，熔断状态迁移计入 SinkFailure
//
// 逐条导出失败由调用方处理 Export 的返回值（经管道分发时由
// 管道计数），这里只在状态迁移时上报一次，避免同一次失败被记两笔。
func WithBreakerDiagnostics(d *xdiag.Diagnostics) BreakerOption {
	return func(c *breakerConfig) {
		c.diag = d
	}
}

// BreakerSink 带熔断的 Sink 装饰器
//
// 下游持续失败时快速拒绝而非逐条等待超时，隔离故障的导出端，
// 保护日志调用点不被拖慢。逐条失败通过 Export 返回值传播给上层
// 计数；进入 Open 状态时额外通过错误通道上报一次，不会静默消失。
type BreakerSink struct {
	inner Sink
	cb    *gobreaker.CircuitBreaker[struct{}]
}

var _ Sink = (*BreakerSink)(nil)
var _ Shutdowner = (*BreakerSink)(nil)

// NewBreaker 用熔断器包装下游 Sink
func NewBreaker(inner Sink, opts ...BreakerOption) (*BreakerSink, error) {
	if inner == nil {
		return nil, ErrNilSink
	}

	cfg := breakerConfig{
		name:        "xsink",
		failures:    DefaultBreakerFailures,
		timeout:     DefaultBreakerTimeout,
		maxRequests: DefaultBreakerMaxRequests,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	diag := cfg.diag
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        cfg.name,
		MaxRequests: cfg.maxRequests,
		Timeout:     cfg.timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				diag.Report(xdiag.KindSinkFailure,
					fmt.Errorf("%w: breaker %s open", ErrBreakerOpen, name))
			}
		},
	})

	return &BreakerSink{inner: inner, cb: cb}, nil
}

// Export 实现 Sink 接口
//
// 失败只通过返回值传播，由上层（通常是管道）统一计数，
// 避免同一次失败在熔断层与管道层被记两笔。
func (b *BreakerSink) Export(ctx context.Context, rec *xrecord.Record) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.inner.Export(ctx, rec)
	})
	return err
}

// Shutdown 实现 Shutdowner：内层 Sink 提供关停能力时透传
func (b *BreakerSink) Shutdown(ctx context.Context) error {
	if s, ok := b.inner.(Shutdowner); ok {
		return s.Shutdown(ctx)
	}
	return nil
}
