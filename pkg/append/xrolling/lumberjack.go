package xrolling

import (
	"context"
	"fmt"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/logkit/pkg/append/xappend"
	"github.com/omeyang/logkit/pkg/core/xrecord"
	"github.com/omeyang/logkit/pkg/util/xfile"
)

// Archive 默认配置值
const (
	// DefaultArchiveMaxSizeMB 默认单个归档文件最大大小（MB）
	DefaultArchiveMaxSizeMB = 100

	// DefaultArchiveMaxBackups 默认保留的备份文件数量
	DefaultArchiveMaxBackups = 7

	// DefaultArchiveMaxAgeDays 默认保留备份的天数
	DefaultArchiveMaxAgeDays = 30

	// archiveMaxSizeMB 单个归档文件大小上限（10 GB）
	archiveMaxSizeMB = 10240

	// archiveMaxBackups 备份文件数量上限
	archiveMaxBackups = 1024

	// archiveMaxAgeDays 备份保留天数上限（约 10 年）
	archiveMaxAgeDays = 3650
)

// archiveConfig Archive 配置
type archiveConfig struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
}

// ArchiveOption Archive 配置选项
type ArchiveOption func(*archiveConfig)

// WithArchiveMaxSize 设置单个归档文件最大大小（MB）
func WithArchiveMaxSize(mb int) ArchiveOption {
	return func(c *archiveConfig) {
		c.maxSizeMB = mb
	}
}

// WithArchiveMaxBackups 设置保留的备份文件数量
func WithArchiveMaxBackups(n int) ArchiveOption {
	return func(c *archiveConfig) {
		c.maxBackups = n
	}
}

// WithArchiveMaxAge 设置保留备份的天数
func WithArchiveMaxAge(days int) ArchiveOption {
	return func(c *archiveConfig) {
		c.maxAgeDays = days
	}
}

// WithArchiveCompress 设置是否 gzip 压缩备份文件
func WithArchiveCompress(compress bool) ArchiveOption {
	return func(c *archiveConfig) {
		c.compress = compress
	}
}

// WithArchiveLocalTime 设置备份文件名是否使用本地时间（默认 UTC）
func WithArchiveLocalTime(local bool) ArchiveOption {
	return func(c *archiveConfig) {
		c.localTime = local
	}
}

// Archive 同步的大小轮转归档写入器
//
// 与 [Writer] 互补的另一类文件落地：写入在调用方线程上同步完成，
// 换来 [Writer] 不提供的备份压缩与按天清理。底层复用 lumberjack 的
// 轮转、压缩与清理机制。
//
// 取舍：归档写入器没有队列，日志调用点承担磁盘延迟；
// 对吞吐敏感的路径应使用 [Writer]。
type Archive struct {
	logger *lumberjack.Logger
	closed atomic.Bool
}

var _ xappend.Appender = (*Archive)(nil)

// NewArchive 创建归档写入器
//
// filename 为活动日志文件路径，父目录不存在时自动创建。
// 备份数量与保留天数不可同时为 0，否则磁盘占用无界。
func NewArchive(filename string, opts ...ArchiveOption) (*Archive, error) {
	if filename == "" {
		return nil, ErrEmptyBase
	}

	cfg := archiveConfig{
		maxSizeMB:  DefaultArchiveMaxSizeMB,
		maxBackups: DefaultArchiveMaxBackups,
		maxAgeDays: DefaultArchiveMaxAgeDays,
		compress:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	safePath, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(safePath); err != nil {
		return nil, err
	}

	return &Archive{
		logger: &lumberjack.Logger{
			Filename:   safePath,
			MaxSize:    cfg.maxSizeMB,
			MaxBackups: cfg.maxBackups,
			MaxAge:     cfg.maxAgeDays,
			Compress:   cfg.compress,
			LocalTime:  cfg.localTime,
		},
	}, nil
}

func (c *archiveConfig) validate() error {
	if c.maxSizeMB <= 0 || c.maxSizeMB > archiveMaxSizeMB {
		return fmt.Errorf("%w: got %d MB, want 1~%d", ErrInvalidSizeLimit, c.maxSizeMB, archiveMaxSizeMB)
	}
	if c.maxBackups < 0 || c.maxBackups > archiveMaxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, c.maxBackups, archiveMaxBackups)
	}
	if c.maxAgeDays < 0 || c.maxAgeDays > archiveMaxAgeDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, c.maxAgeDays, archiveMaxAgeDays)
	}
	if c.maxBackups == 0 && c.maxAgeDays == 0 {
		return ErrNoCleanupPolicy
	}
	return nil
}

// Append 实现 Appender 接口：同步写入，错误直接返回给调用方
func (a *Archive) Append(_ *xrecord.Record, line []byte) error {
	if a.closed.Load() {
		return ErrClosed
	}
	_, err := a.logger.Write(line)
	if err != nil && a.closed.Load() {
		// Append 与 Shutdown 之间存在检查窗口，关闭语义优先于底层 I/O 错误
		return ErrClosed
	}
	return err
}

// Flush 实现 Appender 接口
//
// 同步写入器没有待刷队列，lumberjack 也不暴露 fsync，这里是 no-op。
func (a *Archive) Flush(_ context.Context) error {
	if a.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Shutdown 实现 Appender 接口，幂等
func (a *Archive) Shutdown(_ context.Context) error {
	if a.closed.Swap(true) {
		return nil
	}
	return a.logger.Close()
}

// RequiresBytes 实现 Appender 接口：消费 Layout 渲染结果
func (a *Archive) RequiresBytes() bool {
	return true
}

// Rotate 手动触发一次轮转
//
// 当前文件被重命名为带时间戳的备份并按需压缩，后续写入进入新文件。
// 配合外部信号（如 SIGHUP）实现运维侧的按需切割。
func (a *Archive) Rotate() error {
	if a.closed.Load() {
		return ErrClosed
	}
	return a.logger.Rotate()
}
