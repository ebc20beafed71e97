package xdispatch

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// Pipeline 日志管道：记录的唯一入口，扇出到所有分发单元
//
// 构建后分发单元列表不可变；运行期调整配置的方式是构建新
// Pipeline 并通过 [SetDefault]（或调用方自己的指针交换）整体替换，
// 避免给热路径加锁。
type Pipeline struct {
	dispatches []*Dispatch
	closed     atomic.Bool

	// 级别辅助方法构造 Record 时是否采集调用点（文件与行号）
	captureSource bool
}

// NewPipeline 构建日志管道
//
// 允许零分发单元（得到一个全部禁用的管道，所有记录被丢弃），
// 方便测试与默认值场景。
func NewPipeline(dispatches ...*Dispatch) (*Pipeline, error) {
	for _, d := range dispatches {
		if d == nil {
			return nil, ErrNilDispatch
		}
	}
	owned := make([]*Dispatch, len(dispatches))
	copy(owned, dispatches)
	return &Pipeline{dispatches: owned}, nil
}

// WithSourceCapture 返回开启调用点采集的管道副本
//
// 副本与原管道共享分发单元。开启后级别辅助方法（Trace~Error）
// 构造的 Record 携带调用处文件与行号；runtime.Caller 有固定开销，
// 默认关闭。直接构造 Record 的调用方用 [xrecord.WithSource] 自理。
func (p *Pipeline) WithSourceCapture() *Pipeline {
	clone := &Pipeline{dispatches: p.dispatches, captureSource: true}
	clone.closed.Store(p.closed.Load())
	return clone
}

// Enabled 判断某个 target 在给定级别是否会被任一分发单元接收
//
// 调用点在构造昂贵的日志参数前先问一句，避免白做功。
func (p *Pipeline) Enabled(target string, level xrecord.Level) bool {
	if p.closed.Load() {
		return false
	}
	for _, d := range p.dispatches {
		if d.Enabled(target, level) {
			return true
		}
	}
	return false
}

// Log 分发一条记录到所有分发单元
//
// 各单元独立过滤、独立渲染；任何单元的失败都不影响其他单元。
// 管道关停后为 no-op。
func (p *Pipeline) Log(rec *xrecord.Record) {
	if rec == nil || p.closed.Load() {
		return
	}
	for _, d := range p.dispatches {
		d.Log(rec)
	}
}

// Trace 以 Trace 级别记录一条日志
func (p *Pipeline) Trace(target, msg string, fields ...xrecord.Field) {
	p.log(xrecord.LevelTrace, target, msg, fields)
}

// Debug 以 Debug 级别记录一条日志
func (p *Pipeline) Debug(target, msg string, fields ...xrecord.Field) {
	p.log(xrecord.LevelDebug, target, msg, fields)
}

// Info 以 Info 级别记录一条日志
func (p *Pipeline) Info(target, msg string, fields ...xrecord.Field) {
	p.log(xrecord.LevelInfo, target, msg, fields)
}

// Warn 以 Warn 级别记录一条日志
func (p *Pipeline) Warn(target, msg string, fields ...xrecord.Field) {
	p.log(xrecord.LevelWarn, target, msg, fields)
}

// Error 以 Error 级别记录一条日志
func (p *Pipeline) Error(target, msg string, fields ...xrecord.Field) {
	p.log(xrecord.LevelError, target, msg, fields)
}

// log 级别辅助方法的公共路径：Enabled 预检通过后才构造 Record
func (p *Pipeline) log(level xrecord.Level, target, msg string, fields []xrecord.Field) {
	if !p.Enabled(target, level) {
		return
	}
	opts := []xrecord.Option{xrecord.WithFields(fields...)}
	if p.captureSource {
		// skip 2：越过 log 与级别辅助方法，落在调用方
		opts = append(opts, xrecord.WithSource(2))
	}
	p.Log(xrecord.New(level, target, msg, opts...))
}

// Flush 刷出所有分发单元中未落盘的记录
func (p *Pipeline) Flush(ctx context.Context) error {
	if p.closed.Load() {
		return ErrShutdown
	}
	var errs []error
	for _, d := range p.dispatches {
		if err := d.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Shutdown 关停整个管道，幂等
//
// 先拒绝新记录，再逐个关停分发单元。返回后所有写入器的
// 关停语义（排空、落盘）都已兑现。
func (p *Pipeline) Shutdown(ctx context.Context) error {
	if p.closed.Swap(true) {
		return nil
	}
	var errs []error
	for _, d := range p.dispatches {
		if err := d.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// defaultPipeline 进程级默认管道
//
// 设计决策: 默认值是零分发单元的禁用管道而非控制台管道，
// 库代码不应在未经配置时擅自产生输出。
var defaultPipeline atomic.Pointer[Pipeline]

func init() {
	p, _ := NewPipeline()
	defaultPipeline.Store(p)
}

// Default 返回进程级默认管道
func Default() *Pipeline {
	return defaultPipeline.Load()
}

// SetDefault 整体替换默认管道，返回被替换的旧管道
//
// 典型用法：配置热更新时构建新管道后原子切换，
// 旧管道由调用方决定何时 Shutdown（给在途写入留排空窗口）。
// nil 参数被忽略并返回当前管道。
func SetDefault(p *Pipeline) *Pipeline {
	if p == nil {
		return defaultPipeline.Load()
	}
	return defaultPipeline.Swap(p)
}
