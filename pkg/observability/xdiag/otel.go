package xdiag

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// otel 指标名称，对外契约
const (
	metricDrops       = "logkit.drops"
	metricWriteErrors = "logkit.write_errors"
	metricSinkErrors  = "logkit.sink_errors"
)

// otelMetrics 错误通道的 otel 指标导出
//
// nil 接收者表示未启用指标，record 为 no-op。
type otelMetrics struct {
	drops       metric.Int64Counter
	writeErrors metric.Int64Counter
	sinkErrors  metric.Int64Counter
}

// WithMeter 启用 otel 指标导出
//
// 创建三个计数器：logkit.drops（溢出丢弃）、logkit.write_errors
// （落盘与轮转失败）、logkit.sink_errors（下游导出失败）。
// Config 类故障发生在构造期，不产生运行时指标。
// 仪表创建失败时 [New] fail fast 返回错误。
func WithMeter(meter metric.Meter) Option {
	return func(d *Diagnostics) error {
		if meter == nil {
			return ErrNilMeter
		}

		drops, err := meter.Int64Counter(metricDrops,
			metric.WithDescription("records dropped by queue overflow"))
		if err != nil {
			return fmt.Errorf("xdiag: create counter %s: %w", metricDrops, err)
		}
		writeErrors, err := meter.Int64Counter(metricWriteErrors,
			metric.WithDescription("file write and rotation failures"))
		if err != nil {
			return fmt.Errorf("xdiag: create counter %s: %w", metricWriteErrors, err)
		}
		sinkErrors, err := meter.Int64Counter(metricSinkErrors,
			metric.WithDescription("downstream sink export failures"))
		if err != nil {
			return fmt.Errorf("xdiag: create counter %s: %w", metricSinkErrors, err)
		}

		d.metrics = &otelMetrics{
			drops:       drops,
			writeErrors: writeErrors,
			sinkErrors:  sinkErrors,
		}
		return nil
	}
}

// record 记录一次故障到对应仪表
//
// 指标上报不携带调用方 context——故障归属于管道而非某次请求，
// 使用 Background 避免把已取消的请求 context 传给 SDK。
func (m *otelMetrics) record(kind Kind) {
	if m == nil {
		return
	}

	ctx := context.Background()
	attr := metric.WithAttributes(attribute.String("kind", kind.String()))

	switch kind {
	case KindOverflowDrop:
		m.drops.Add(ctx, 1, attr)
	case KindSinkFailure:
		m.sinkErrors.Add(ctx, 1, attr)
	case KindWriteFailure, KindConfig:
		m.writeErrors.Add(ctx, 1, attr)
	}
}
