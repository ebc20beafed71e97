package xsink

import "errors"

var (
	// ErrNilSink 下游 Sink 不可为空
	ErrNilSink = errors.New("xsink: sink is required")

	// ErrNilRecord 导出的记录不可为空
	ErrNilRecord = errors.New("xsink: record is required")

	// ErrSinkClosed Sink 已关停
	ErrSinkClosed = errors.New("xsink: sink is shut down")

	// ErrInvalidTimeout 导出超时必须为正
	ErrInvalidTimeout = errors.New("xsink: export timeout must be positive")

	// ErrBreakerOpen 熔断器进入 Open 状态
	ErrBreakerOpen = errors.New("xsink: circuit breaker open")
)
