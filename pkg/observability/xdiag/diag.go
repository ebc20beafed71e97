package xdiag

import (
	"sync/atomic"
)

// Kind 内部故障分类
type Kind int

const (
	// KindConfig 配置错误（构造期）
	KindConfig Kind = iota
	// KindWriteFailure 落盘失败（磁盘满、权限丢失、轮转开文件失败等）
	KindWriteFailure
	// KindOverflowDrop 队列溢出丢弃
	KindOverflowDrop
	// KindSinkFailure 下游 sink 导出失败
	KindSinkFailure

	kindCount
)

// String 返回分类的可读名称
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindWriteFailure:
		return "write_failure"
	case KindOverflowDrop:
		return "overflow_drop"
	case KindSinkFailure:
		return "sink_failure"
	default:
		return "unknown"
	}
}

// Handler 内部故障回调
//
// 在日志管道内部同步执行，必须轻量。
// 约束：回调不得再进入日志管道本身（会形成递归写入），
// 推荐输出到 os.Stderr、指标系统或独立通道。
type Handler func(kind Kind, err error)

// Diagnostics 日志系统的进程内错误通道
//
// 管道内部的所有故障（I/O 错误、溢出丢弃、轮转失败、sink 失败）
// 都汇入这里：按分类计数，并可选地通知回调与 otel 指标。
// 任何故障都不会以错误形式传回应用的日志调用点。
//
// 零值不可用，必须通过 [New] 创建；所有方法对 nil 接收者安全
// （静默 no-op），调用方无需判空。
type Diagnostics struct {
	counters  [kindCount]atomic.Uint64
	handler   Handler
	inHandler atomic.Bool
	metrics   *otelMetrics
}

// Option Diagnostics 配置选项
type Option func(*Diagnostics) error

// WithHandler 设置故障回调
//
// 设计决策: 与 xlog 的 onError 相同的保护——CAS 递归防护加 panic 隔离。
// 回调自身触发的故障不会再次进入回调，回调 panic 被吞掉只计数，
// 确保错误通知永不反向中断业务调用链。
func WithHandler(h Handler) Option {
	return func(d *Diagnostics) error {
		d.handler = h
		return nil
	}
}

// New 创建错误通道
func New(opts ...Option) (*Diagnostics, error) {
	d := &Diagnostics{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Nop 返回仅计数、无回调无指标的错误通道
//
// 构造不会失败，适合测试与默认装配。
func Nop() *Diagnostics {
	return &Diagnostics{}
}

// Report 上报一次内部故障
//
// err 可以为 nil（纯计数事件，如溢出丢弃）。并发安全。
func (d *Diagnostics) Report(kind Kind, err error) {
	if d == nil {
		return
	}
	if kind < 0 || kind >= kindCount {
		kind = KindWriteFailure
	}

	d.counters[kind].Add(1)
	d.metrics.record(kind)

	if d.handler != nil {
		// 递归保护：回调执行期间产生的故障只计数不再回调
		if d.inHandler.CompareAndSwap(false, true) {
			defer d.inHandler.Store(false)
			d.safeHandle(kind, err)
		}
	}
}

// safeHandle 隔离回调 panic
func (d *Diagnostics) safeHandle(kind Kind, err error) {
	defer func() {
		_ = recover()
	}()
	d.handler(kind, err)
}

// Count 返回某一分类的累计次数
func (d *Diagnostics) Count(kind Kind) uint64 {
	if d == nil || kind < 0 || kind >= kindCount {
		return 0
	}
	return d.counters[kind].Load()
}

// Snapshot 返回各分类累计次数的快照
func (d *Diagnostics) Snapshot() map[Kind]uint64 {
	out := make(map[Kind]uint64, kindCount)
	if d == nil {
		return out
	}
	for k := Kind(0); k < kindCount; k++ {
		out[k] = d.counters[k].Load()
	}
	return out
}
