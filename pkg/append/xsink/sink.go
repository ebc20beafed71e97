package xsink

import (
	"context"
	"time"

	"github.com/omeyang/logkit/pkg/append/xappend"
	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// Sink 结构化日志的下游导出端
//
// 与文件类写入器不同，Sink 消费的是结构化 Record 而非渲染字节，
// 导出目标自行决定序列化方式（span 事件、远端采集器等）。
//
// 实现约定：
//   - Export 必须并发安全
//   - 阻塞操作必须尊重 ctx 取消
//   - 失败通过返回值上报，由上层决定隔离策略（见 [NewBreaker]）
type Sink interface {
	// Export 导出一条日志记录
	Export(ctx context.Context, rec *xrecord.Record) error
}

// Shutdowner 可选的关停能力，Sink 实现按需提供
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// appenderAdapter 把 Sink 适配为 Appender，接入统一的分发管道
type appenderAdapter struct {
	sink    Sink
	timeout time.Duration
}

var _ xappend.Appender = (*appenderAdapter)(nil)

// AppenderOption 适配器选项
type AppenderOption func(*appenderAdapter) error

// WithExportTimeout 设置单次导出的超时时间
//
// 默认不设超时，由 Sink 自行约束阻塞时长。
func WithExportTimeout(d time.Duration) AppenderOption {
	return func(a *appenderAdapter) error {
		if d <= 0 {
			return ErrInvalidTimeout
		}
		a.timeout = d
		return nil
	}
}

// NewAppender 将 Sink 适配为 [xappend.Appender]
//
// 适配后 RequiresBytes 为 false：管道跳过 Layout 渲染，
// 直接把结构化 Record 交给 Sink。
func NewAppender(sink Sink, opts ...AppenderOption) (xappend.Appender, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	a := &appenderAdapter{sink: sink}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Append 实现 Appender 接口：忽略渲染字节，导出结构化记录
func (a *appenderAdapter) Append(rec *xrecord.Record, _ []byte) error {
	ctx := context.Background()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.sink.Export(ctx, rec)
}

// Flush 实现 Appender 接口
func (a *appenderAdapter) Flush(_ context.Context) error {
	return nil
}

// Shutdown 实现 Appender 接口：Sink 提供关停能力时透传
func (a *appenderAdapter) Shutdown(ctx context.Context) error {
	if s, ok := a.sink.(Shutdowner); ok {
		return s.Shutdown(ctx)
	}
	return nil
}

// RequiresBytes 实现 Appender 接口：消费结构化记录，无需渲染
func (a *appenderAdapter) RequiresBytes() bool {
	return false
}
