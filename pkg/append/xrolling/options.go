package xrolling

import (
	"time"

	"github.com/omeyang/logkit/pkg/core/xrecord"
	"github.com/omeyang/logkit/pkg/observability/xdiag"
)

// 默认配置值
const (
	// DefaultCapacity 默认队列容量
	DefaultCapacity = 1024

	// DefaultBlockTimeout Block 策略的默认最长阻塞时间
	DefaultBlockTimeout = 100 * time.Millisecond

	// defaultFileMode 日志文件权限
	defaultFileMode = 0o600

	// maxCapacity 队列容量上限，防御误配置吃光内存
	maxCapacity = 1 << 20
)

// Overflow 队列满时的溢出策略
type Overflow int

const (
	// DropNewest 丢弃新到的写入（默认）
	//
	// 设计决策: 默认策略必须保证日志调用点零阻塞，宁可丢最新
	// 一条也不让应用线程等磁盘。丢弃始终计数上报，绝不静默。
	DropNewest Overflow = iota

	// DropOldest 丢弃队列中最旧的写入，为新写入腾位
	DropOldest

	// Block 阻塞调用方，最长等待 BlockTimeout，超时后丢弃新写入
	Block
)

// String 返回溢出策略的可读名称
func (o Overflow) String() string {
	switch o {
	case DropNewest:
		return "drop_newest"
	case DropOldest:
		return "drop_oldest"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

func (o Overflow) valid() bool {
	return o >= DropNewest && o <= Block
}

// config 写入器配置
type config struct {
	interval     Interval
	sizeLimit    int64 // 0 表示不按大小轮转
	capacity     int
	overflow     Overflow
	blockTimeout time.Duration
	maxBackups   int // 0 表示不清理
	syncLevel    xrecord.Level
	hasSyncLevel bool
	clock        Clock
	diag         *xdiag.Diagnostics
}

func defaultConfig() config {
	return config{
		interval:     Never,
		capacity:     DefaultCapacity,
		overflow:     DropNewest,
		blockTimeout: DefaultBlockTimeout,
		clock:        SystemClock(),
	}
}

func (c *config) validate() error {
	if !c.interval.valid() {
		return ErrInvalidInterval
	}
	if c.capacity <= 0 || c.capacity > maxCapacity {
		return ErrInvalidCapacity
	}
	if !c.overflow.valid() {
		return ErrInvalidOverflow
	}
	if c.overflow == Block && c.blockTimeout <= 0 {
		return ErrInvalidBlockTimeout
	}
	if c.maxBackups < 0 {
		return ErrInvalidMaxBackups
	}
	return nil
}

// Option 写入器配置选项
type Option func(*config) error

// WithInterval 设置时间型轮转周期
func WithInterval(i Interval) Option {
	return func(c *config) error {
		if !i.valid() {
			return ErrInvalidInterval
		}
		c.interval = i
		return nil
	}
}

// WithSizeLimit 设置按大小轮转的字节上限
//
// 可与时间周期组合：每次写入前同时检查时间边界与累计字节数。
// 0 或负值为配置错误（想禁用大小轮转就不要调用本选项）。
func WithSizeLimit(bytes int64) Option {
	return func(c *config) error {
		if bytes <= 0 {
			return ErrInvalidSizeLimit
		}
		c.sizeLimit = bytes
		return nil
	}
}

// WithCapacity 设置待写队列容量
func WithCapacity(n int) Option {
	return func(c *config) error {
		if n <= 0 || n > maxCapacity {
			return ErrInvalidCapacity
		}
		c.capacity = n
		return nil
	}
}

// WithOverflow 设置队列满时的溢出策略
func WithOverflow(o Overflow) Option {
	return func(c *config) error {
		if !o.valid() {
			return ErrInvalidOverflow
		}
		c.overflow = o
		return nil
	}
}

// WithBlockTimeout 设置 Block 策略的最长阻塞时间
func WithBlockTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return ErrInvalidBlockTimeout
		}
		c.blockTimeout = d
		return nil
	}
}

// WithMaxBackups 设置轮转后保留的历史文件数量
//
// 每次轮转完成后删除超出数量的最旧文件（尽力而为，删除失败
// 上报错误通道不影响写入）。0 表示不清理。
func WithMaxBackups(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return ErrInvalidMaxBackups
		}
		c.maxBackups = n
		return nil
	}
}

// WithSyncLevel 设置同步刷盘级别
//
// 不低于该级别的日志写入后立即执行 fsync。
// 设计决策: 默认不启用——是否为 Error 级日志付出每条 fsync 的代价
// 是策略选择，交给配置而非硬编码，默认行为由测试钉住。
func WithSyncLevel(level xrecord.Level) Option {
	return func(c *config) error {
		c.syncLevel = level
		c.hasSyncLevel = true
		return nil
	}
}

// WithClock 注入时钟（测试用）
func WithClock(clock Clock) Option {
	return func(c *config) error {
		if clock != nil {
			c.clock = clock
		}
		return nil
	}
}

// WithDiagnostics 接入错误通道
//
// 溢出丢弃、落盘失败、轮转失败都上报到这里。
// 不设置时故障仅静默丢弃对应写入（不推荐）。
func WithDiagnostics(d *xdiag.Diagnostics) Option {
	return func(c *config) error {
		c.diag = d
		return nil
	}
}
