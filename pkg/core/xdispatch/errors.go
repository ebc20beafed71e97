package xdispatch

import "errors"

var (
	// ErrNoAppenders 分发单元至少需要一个写入器
	ErrNoAppenders = errors.New("xdispatch: at least one appender is required")

	// ErrNilAppender 写入器不可为空
	ErrNilAppender = errors.New("xdispatch: appender must not be nil")

	// ErrNilDispatch 分发单元不可为空
	ErrNilDispatch = errors.New("xdispatch: dispatch must not be nil")

	// ErrShutdown 管道已关停
	ErrShutdown = errors.New("xdispatch: pipeline is shut down")
)
