package xappend

import "errors"

var (
	// ErrShutdown Appender 已关闭，拒绝新的投递
	ErrShutdown = errors.New("xappend: appender is shut down")
)
