package xrolling

import "errors"

// 配置校验错误，均在构造期 fail fast
var (
	// ErrEmptyDir 日志目录为空
	ErrEmptyDir = errors.New("xrolling: directory is required")

	// ErrEmptyBase 日志文件基础名为空
	ErrEmptyBase = errors.New("xrolling: base filename is required")

	// ErrInvalidInterval 未定义的轮转周期
	ErrInvalidInterval = errors.New("xrolling: invalid rotation interval")

	// ErrInvalidSizeLimit 大小上限非法（必须 > 0）
	ErrInvalidSizeLimit = errors.New("xrolling: size limit must be positive")

	// ErrInvalidCapacity 队列容量非法（必须 > 0）
	ErrInvalidCapacity = errors.New("xrolling: queue capacity must be positive")

	// ErrInvalidOverflow 未定义的溢出策略
	ErrInvalidOverflow = errors.New("xrolling: invalid overflow policy")

	// ErrInvalidBlockTimeout Block 策略的超时非法（必须 > 0）
	ErrInvalidBlockTimeout = errors.New("xrolling: block timeout must be positive")

	// ErrInvalidMaxBackups 保留文件数非法（必须 >= 0）
	ErrInvalidMaxBackups = errors.New("xrolling: max backups must not be negative")

	// ErrInvalidMaxAge 备份保留天数非法（必须 >= 0）
	ErrInvalidMaxAge = errors.New("xrolling: max age must not be negative")

	// ErrNoCleanupPolicy 归档缺少清理策略（备份数与保留天数不可同时为 0）
	ErrNoCleanupPolicy = errors.New("xrolling: max backups and max age cannot both be zero")

	// ErrDirNotWritable 日志目录不可写
	ErrDirNotWritable = errors.New("xrolling: directory is not writable")
)

// 运行时错误
var (
	// ErrShutdown 写入器已关闭
	ErrShutdown = errors.New("xrolling: writer is shut down")

	// ErrQueueFull 队列已满导致丢弃（通过错误通道上报，不返回调用方）
	ErrQueueFull = errors.New("xrolling: queue is full")

	// ErrClosed 轮转器已关闭
	ErrClosed = errors.New("xrolling: rotator is closed")
)
