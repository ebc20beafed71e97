package xsink

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

const (
	defaultInstrumentationName = "github.com/omeyang/logkit/xsink"

	// 事件属性键，对齐 OTel 日志语义约定
	attrEventID  = "log.record.uid"
	attrSeverity = "log.severity"
	attrTarget   = "log.target"
	attrFile     = "code.filepath"
	attrLine     = "code.lineno"
)

// otelConfig OTel Sink 配置
type otelConfig struct {
	instrumentationName string
	tracerProvider      trace.TracerProvider
}

// OTelOption OTel Sink 配置选项
type OTelOption func(*otelConfig)

// WithInstrumentationName 设置 instrumentation 名称
func WithInstrumentationName(name string) OTelOption {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithTracerProvider 设置 TracerProvider（默认取全局）
func WithTracerProvider(provider trace.TracerProvider) OTelOption {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.tracerProvider = provider
		}
	}
}

// OTelSink 把日志记录导出为当前 span 上的事件
//
// 调用链追踪场景下日志挂在 span 上比独立文件更可检索：
// 采样、检索、关联全部复用 trace 基础设施。
// ctx 中没有活跃 span 时记录被跳过（返回 nil），
// 避免为每条日志开启孤儿 span 污染追踪数据。
type OTelSink struct {
	tracer trace.Tracer
	closed atomic.Bool
}

var _ Sink = (*OTelSink)(nil)
var _ Shutdowner = (*OTelSink)(nil)

// NewOTel 创建 OTel span 事件 Sink
func NewOTel(opts ...OTelOption) *OTelSink {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		tracerProvider:      otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return &OTelSink{
		tracer: cfg.tracerProvider.Tracer(cfg.instrumentationName),
	}
}

// Export 实现 Sink 接口
//
// 每个事件携带唯一 uid，供下游在重试/重放场景去重。
// Error 级记录同时把 span 状态置为 Error。
func (s *OTelSink) Export(ctx context.Context, rec *xrecord.Record) error {
	if s.closed.Load() {
		return ErrSinkClosed
	}
	if rec == nil {
		return ErrNilRecord
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return nil
	}

	attrs := make([]attribute.KeyValue, 0, 5+len(rec.Fields))
	attrs = append(attrs,
		attribute.String(attrEventID, uuid.NewString()),
		attribute.String(attrSeverity, rec.Level.String()),
		attribute.String(attrTarget, rec.Target),
	)
	if rec.HasSource() {
		attrs = append(attrs,
			attribute.String(attrFile, rec.File),
			attribute.Int(attrLine, rec.Line),
		)
	}
	for _, f := range rec.Fields {
		attrs = append(attrs, fieldAttr(f))
	}

	span.AddEvent(rec.Message, trace.WithAttributes(attrs...), trace.WithTimestamp(rec.Time))
	if rec.Level.AtLeast(xrecord.LevelError) {
		span.SetStatus(codes.Error, rec.Message)
	}
	return nil
}

// Shutdown 实现 Shutdowner，幂等
func (s *OTelSink) Shutdown(_ context.Context) error {
	s.closed.Store(true)
	return nil
}

// fieldAttr 把结构化字段转为 span 属性，Kind 不匹配时退化为文本
func fieldAttr(f xrecord.Field) attribute.KeyValue {
	switch f.Kind {
	case xrecord.KindString:
		if v, ok := f.Value.(string); ok {
			return attribute.String(f.Key, v)
		}
	case xrecord.KindInt64:
		if v, ok := f.Value.(int64); ok {
			return attribute.Int64(f.Key, v)
		}
	case xrecord.KindFloat64:
		if v, ok := f.Value.(float64); ok {
			return attribute.Float64(f.Key, v)
		}
	case xrecord.KindBool:
		if v, ok := f.Value.(bool); ok {
			return attribute.Bool(f.Key, v)
		}
	}
	return attribute.String(f.Key, f.Text())
}
