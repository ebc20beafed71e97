package xrecord

import (
	"runtime"
	"time"
)

// Record 一条结构化日志事件
//
// 由调用方在日志调用点构造，构造完成后不可变：交给管道后被多个
// Dispatch 只读共享，任何组件都不得修改。派生需求使用 With* 方法
// 返回浅拷贝。
type Record struct {
	// Level 日志级别，必须是常规级别（Trace~Error）
	Level Level

	// Time 日志产生时刻（携带时区信息的墙钟时间）
	Time time.Time

	// Target 层级化的来源路径（如 "app::storage::mongo"）
	Target string

	// Message 已格式化的消息文本
	Message string

	// Fields 有序的结构化键值对
	Fields []Field

	// File 可选的源码文件路径，空表示未采集
	File string

	// Line 可选的源码行号，File 为空时无意义
	Line int
}

// Option Record 构造选项
type Option func(*Record)

// WithTime 指定日志时刻（默认 time.Now()）
func WithTime(t time.Time) Option {
	return func(r *Record) {
		r.Time = t
	}
}

// WithFields 追加结构化字段
func WithFields(fields ...Field) Option {
	return func(r *Record) {
		r.Fields = append(r.Fields, fields...)
	}
}

// WithSource 采集调用者源码位置
//
// skip 含义与 runtime.Caller 一致：0 表示 New 的调用处。
// 采集失败时静默跳过，日志调用点永不因此失败。
func WithSource(skip int) Option {
	return func(r *Record) {
		// +2: 跳过 WithSource 闭包与 New 自身
		if _, file, line, ok := runtime.Caller(skip + 2); ok {
			r.File = file
			r.Line = line
		}
	}
}

// New 构造一条日志 Record
//
// 非法级别会被钳制到常规范围（低于 Trace 取 Trace，高于 Error 取 Error），
// 构造永不失败——Record 构造处于日志热路径，校验错误没有可返回的去处。
func New(level Level, target, msg string, opts ...Option) *Record {
	if level < LevelTrace {
		level = LevelTrace
	}
	if level > LevelError {
		level = LevelError
	}

	r := &Record{
		Level:   level,
		Time:    time.Now(),
		Target:  target,
		Message: msg,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithField 返回追加一个字段的浅拷贝
//
// 原 Record 保持不变。Fields 切片整体复制，避免共享底层数组
// 导致并发 append 污染。
func (r *Record) WithField(f Field) *Record {
	clone := *r
	clone.Fields = make([]Field, 0, len(r.Fields)+1)
	clone.Fields = append(clone.Fields, r.Fields...)
	clone.Fields = append(clone.Fields, f)
	return &clone
}

// HasSource 判断是否携带源码位置
func (r *Record) HasSource() bool {
	return r.File != ""
}
