package xdispatch

import (
	"context"
	"errors"

	"github.com/omeyang/logkit/pkg/append/xappend"
	"github.com/omeyang/logkit/pkg/core/xfilter"
	"github.com/omeyang/logkit/pkg/core/xlayout"
	"github.com/omeyang/logkit/pkg/core/xrecord"
	"github.com/omeyang/logkit/pkg/observability/xdiag"
)

// Dispatch 一个分发单元：过滤 → 渲染 → 写入
//
// 过滤决定一条记录是否进入本单元，Layout 负责渲染，
// 写入器各自独立消费。构建后不可变，可被任意多 goroutine 共享。
//
// 写入器之间互为隔离的故障域：一个写入器失败只影响它自己，
// 失败通过错误通道计数，其余写入器照常收到记录。
type Dispatch struct {
	matcher   xfilter.Matcher
	layout    xlayout.Layout
	appenders []xappend.Appender
	diag      *xdiag.Diagnostics

	// 任一写入器需要渲染字节时为 true，决定是否执行 Layout
	needsBytes bool
}

// dispatchConfig Dispatch 构建配置
type dispatchConfig struct {
	matcher xfilter.Matcher
	layout  xlayout.Layout
	diag    *xdiag.Diagnostics
}

// DispatchOption Dispatch 配置选项
type DispatchOption func(*dispatchConfig)

// WithMatcher 设置过滤器，不设置时所有记录都通过
func WithMatcher(m xfilter.Matcher) DispatchOption {
	return func(c *dispatchConfig) {
		c.matcher = m
	}
}

// WithLayout 设置渲染 Layout，默认文本格式
func WithLayout(l xlayout.Layout) DispatchOption {
	return func(c *dispatchConfig) {
		if l != nil {
			c.layout = l
		}
	}
}

// WithDiagnostics 接入错误通道，写入器失败在此计数
func WithDiagnostics(d *xdiag.Diagnostics) DispatchOption {
	return func(c *dispatchConfig) {
		c.diag = d
	}
}

// NewDispatch 构建分发单元
//
// 至少需要一个写入器。构建成功后配置不可再变：
// 运行期需要调整过滤级别时重建 Dispatch 并整体替换（见 Pipeline）。
func NewDispatch(appenders []xappend.Appender, opts ...DispatchOption) (*Dispatch, error) {
	if len(appenders) == 0 {
		return nil, ErrNoAppenders
	}
	for _, a := range appenders {
		if a == nil {
			return nil, ErrNilAppender
		}
	}

	cfg := dispatchConfig{layout: xlayout.NewText()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	needsBytes := false
	for _, a := range appenders {
		if a.RequiresBytes() {
			needsBytes = true
			break
		}
	}

	owned := make([]xappend.Appender, len(appenders))
	copy(owned, appenders)

	return &Dispatch{
		matcher:    cfg.matcher,
		layout:     cfg.layout,
		appenders:  owned,
		diag:       cfg.diag,
		needsBytes: needsBytes,
	}, nil
}

// Enabled 判断记录是否会进入本单元
//
// 昂贵字段构造前的廉价预检：未配置过滤器时一律通过。
func (d *Dispatch) Enabled(target string, level xrecord.Level) bool {
	if d.matcher == nil {
		return true
	}
	return d.matcher.Matches(target, level)
}

// Log 分发一条记录
//
// Layout 最多渲染一次，渲染结果在写入器间共享（写入器不得改写）。
// 没有写入器需要字节时完全跳过渲染。
func (d *Dispatch) Log(rec *xrecord.Record) {
	if rec == nil || !d.Enabled(rec.Target, rec.Level) {
		return
	}

	var line []byte
	if d.needsBytes {
		line = d.layout.Render(rec)
	}

	for _, a := range d.appenders {
		if err := a.Append(rec, line); err != nil {
			// 消费渲染字节的是文件/控制台类写入器，失败计入 write_failure；
			// 消费结构化记录的是下游导出端，失败计入 sink_failure
			kind := xdiag.KindWriteFailure
			if !a.RequiresBytes() {
				kind = xdiag.KindSinkFailure
			}
			d.diag.Report(kind, err)
		}
	}
}

// Flush 将所有写入器中未落盘的记录刷出
//
// 逐个写入器执行到底，失败聚合返回，不因一个失败跳过其余。
func (d *Dispatch) Flush(ctx context.Context) error {
	var errs []error
	for _, a := range d.appenders {
		if err := a.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Shutdown 关停所有写入器
func (d *Dispatch) Shutdown(ctx context.Context) error {
	var errs []error
	for _, a := range d.appenders {
		if err := a.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
