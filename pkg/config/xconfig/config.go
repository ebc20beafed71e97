package xconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/omeyang/logkit/pkg/append/xappend"
	"github.com/omeyang/logkit/pkg/append/xrolling"
	"github.com/omeyang/logkit/pkg/append/xsink"
	"github.com/omeyang/logkit/pkg/core/xdispatch"
	"github.com/omeyang/logkit/pkg/core/xfilter"
	"github.com/omeyang/logkit/pkg/core/xlayout"
	"github.com/omeyang/logkit/pkg/core/xrecord"
	"github.com/omeyang/logkit/pkg/core/xsample"
	"github.com/omeyang/logkit/pkg/observability/xdiag"
)

// Config 声明式的管道配置
//
// 一份配置对应一个 Dispatch：过滤指令、Layout 与一组写入器。
// YAML 示例：
//
//	filter: "app=debug,app::storage=warn|info"
//	layout: text
//	appenders:
//	  - type: console
//	    target: stderr
//	  - type: rolling
//	    dir: /var/log/app
//	    base: app
//	    interval: daily
//	    size_limit: 67108864
//	    max_backups: 7
type Config struct {
	// Filter 过滤指令字符串，语法见 xfilter.Parse；空值表示不过滤
	Filter string `koanf:"filter"`

	// Layout 渲染格式：text（默认）或 json
	Layout string `koanf:"layout"`

	// Sample 采样配置，nil 表示不采样
	Sample *SampleConfig `koanf:"sample"`

	// CaptureSource 级别辅助方法是否采集调用点文件与行号
	CaptureSource bool `koanf:"capture_source"`

	// Appenders 写入器列表，至少一个
	Appenders []AppenderConfig `koanf:"appenders"`
}

// SampleConfig 叠加在过滤之上的采样配置
//
// YAML 示例：
//
//	sample:
//	  rate: 0.1
//	  key: target
//	  bypass_level: warn
type SampleConfig struct {
	// Rate 采样比率，[0.0, 1.0]
	Rate float64 `koanf:"rate"`

	// Key 采样 key 策略：random（默认）按日志独立随机；
	// target 按 target 一致性采样，同一模块的日志同放行同丢弃
	Key string `koanf:"key"`

	// BypassLevel 不低于该级别的日志跳过采样，空值表示全部参与采样
	BypassLevel string `koanf:"bypass_level"`
}

// AppenderConfig 单个写入器的配置
//
// Type 决定生效的字段子集，未使用的字段被忽略。
type AppenderConfig struct {
	// Type 写入器类型：console / rolling / archive / otel
	Type string `koanf:"type"`

	// Target 控制台输出目标：stdout（默认）/ stderr（console）
	Target string `koanf:"target"`

	// Dir 日志目录（rolling）
	Dir string `koanf:"dir"`
	// Base 文件基础名（rolling）
	Base string `koanf:"base"`
	// Interval 轮转周期：never / minutely / hourly / daily（rolling）
	Interval string `koanf:"interval"`
	// SizeLimit 按大小轮转的字节上限，0 表示不按大小轮转（rolling）
	SizeLimit int64 `koanf:"size_limit"`
	// Capacity 待写队列容量（rolling）
	Capacity int `koanf:"capacity"`
	// Overflow 溢出策略：drop_newest / drop_oldest / block（rolling）
	Overflow string `koanf:"overflow"`
	// BlockTimeout Block 策略的最长阻塞时间（rolling）
	BlockTimeout time.Duration `koanf:"block_timeout"`
	// MaxBackups 保留的历史文件数量（rolling / archive）
	MaxBackups int `koanf:"max_backups"`
	// SyncLevel 不低于该级别的日志立即 fsync，空值不启用（rolling）
	SyncLevel string `koanf:"sync_level"`

	// Path 活动日志文件路径（archive）
	Path string `koanf:"path"`
	// MaxSizeMB 单个归档文件最大大小（archive）
	MaxSizeMB int `koanf:"max_size_mb"`
	// MaxAgeDays 备份保留天数（archive）
	MaxAgeDays int `koanf:"max_age_days"`
	// Compress 是否压缩备份，默认压缩（archive）
	Compress *bool `koanf:"compress"`

	// BreakerFailures 连续失败多少次熔断，0 表示不加熔断（otel）
	BreakerFailures uint32 `koanf:"breaker_failures"`
}

// buildConfig Build 的运行期依赖
type buildConfig struct {
	diag *xdiag.Diagnostics
}

// BuildOption Build 的配置选项
type BuildOption func(*buildConfig)

// WithDiagnostics 把错误通道注入构建出的全部组件
func WithDiagnostics(d *xdiag.Diagnostics) BuildOption {
	return func(c *buildConfig) {
		c.diag = d
	}
}

// Build 把声明式配置物化为可用的日志管道
//
// 所有配置错误在此 fail fast；返回的管道已就绪，
// 关停责任移交调用方。
func (c *Config) Build(opts ...BuildOption) (*xdispatch.Pipeline, error) {
	bc := buildConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&bc)
		}
	}

	if len(c.Appenders) == 0 {
		return nil, ErrNoAppenders
	}

	dispatchOpts := []xdispatch.DispatchOption{
		xdispatch.WithDiagnostics(bc.diag),
	}

	matcher, err := c.buildMatcher()
	if err != nil {
		return nil, err
	}
	if matcher != nil {
		dispatchOpts = append(dispatchOpts, xdispatch.WithMatcher(matcher))
	}

	layout, err := buildLayout(c.Layout)
	if err != nil {
		return nil, err
	}
	dispatchOpts = append(dispatchOpts, xdispatch.WithLayout(layout))

	appenders := make([]xappend.Appender, 0, len(c.Appenders))
	for i, ac := range c.Appenders {
		a, err := ac.build(bc.diag)
		if err != nil {
			return nil, fmt.Errorf("appender[%d]: %w", i, err)
		}
		appenders = append(appenders, a)
	}

	d, err := xdispatch.NewDispatch(appenders, dispatchOpts...)
	if err != nil {
		return nil, err
	}
	p, err := xdispatch.NewPipeline(d)
	if err != nil {
		return nil, err
	}
	if c.CaptureSource {
		p = p.WithSourceCapture()
	}
	return p, nil
}

// buildMatcher 解析过滤指令并按需叠加采样，两者都未配置时返回 nil
func (c *Config) buildMatcher() (xfilter.Matcher, error) {
	var matcher xfilter.Matcher
	if c.Filter != "" {
		filter, err := xfilter.Parse(c.Filter)
		if err != nil {
			return nil, err
		}
		matcher = filter
	}
	if c.Sample == nil {
		return matcher, nil
	}

	if matcher == nil {
		// Compose 需要基础过滤器；无过滤配置时用全放行的 trace 默认指令
		filter, err := xfilter.Parse("trace")
		if err != nil {
			return nil, err
		}
		matcher = filter
	}

	sampler, err := c.Sample.buildSampler()
	if err != nil {
		return nil, err
	}

	var composeOpts []xsample.ComposeOption
	if c.Sample.BypassLevel != "" {
		level, err := xrecord.ParseLevel(c.Sample.BypassLevel)
		if err != nil {
			return nil, err
		}
		composeOpts = append(composeOpts, xsample.WithBypassLevel(level))
	}
	return xsample.Compose(matcher, sampler, composeOpts...)
}

// buildSampler 解析采样策略名称
func (s *SampleConfig) buildSampler() (xsample.Sampler, error) {
	switch s.Key {
	case "", "random":
		return xsample.NewRandomSampler(s.Rate)
	case "target":
		return xsample.NewKeyBasedSampler(s.Rate, xsample.TargetKey)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSampleKey, s.Key)
	}
}

// buildLayout 解析 Layout 名称
func buildLayout(name string) (xlayout.Layout, error) {
	switch name {
	case "", "text":
		return xlayout.NewText(), nil
	case "json":
		return xlayout.NewJSON(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
}

// build 物化单个写入器
func (a *AppenderConfig) build(diag *xdiag.Diagnostics) (xappend.Appender, error) {
	switch a.Type {
	case "console":
		switch a.Target {
		case "", "stdout":
			return xappend.NewConsole(os.Stdout), nil
		case "stderr":
			return xappend.NewConsole(os.Stderr), nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, a.Target)
		}

	case "rolling":
		return a.buildRolling(diag)

	case "archive":
		return a.buildArchive()

	case "otel":
		var sink xsink.Sink = xsink.NewOTel()
		if a.BreakerFailures > 0 {
			var err error
			sink, err = xsink.NewBreaker(sink,
				xsink.WithBreakerFailures(a.BreakerFailures),
				xsink.WithBreakerDiagnostics(diag),
			)
			if err != nil {
				return nil, err
			}
		}
		return xsink.NewAppender(sink)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAppender, a.Type)
	}
}

// buildRolling 物化异步滚动写入器
func (a *AppenderConfig) buildRolling(diag *xdiag.Diagnostics) (xappend.Appender, error) {
	opts := []xrolling.Option{xrolling.WithDiagnostics(diag)}

	if a.Interval != "" {
		interval, err := parseInterval(a.Interval)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xrolling.WithInterval(interval))
	}
	if a.SizeLimit > 0 {
		opts = append(opts, xrolling.WithSizeLimit(a.SizeLimit))
	}
	if a.Capacity > 0 {
		opts = append(opts, xrolling.WithCapacity(a.Capacity))
	}
	if a.Overflow != "" {
		overflow, err := parseOverflow(a.Overflow)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xrolling.WithOverflow(overflow))
	}
	if a.BlockTimeout > 0 {
		opts = append(opts, xrolling.WithBlockTimeout(a.BlockTimeout))
	}
	if a.MaxBackups > 0 {
		opts = append(opts, xrolling.WithMaxBackups(a.MaxBackups))
	}
	if a.SyncLevel != "" {
		level, err := xrecord.ParseLevel(a.SyncLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xrolling.WithSyncLevel(level))
	}

	return xrolling.New(a.Dir, a.Base, opts...)
}

// buildArchive 物化同步归档写入器
func (a *AppenderConfig) buildArchive() (xappend.Appender, error) {
	opts := []xrolling.ArchiveOption{
		xrolling.WithArchiveCompress(a.Compress == nil || *a.Compress),
	}
	if a.MaxSizeMB > 0 {
		opts = append(opts, xrolling.WithArchiveMaxSize(a.MaxSizeMB))
	}
	if a.MaxBackups > 0 {
		opts = append(opts, xrolling.WithArchiveMaxBackups(a.MaxBackups))
	}
	if a.MaxAgeDays > 0 {
		opts = append(opts, xrolling.WithArchiveMaxAge(a.MaxAgeDays))
	}
	return xrolling.NewArchive(a.Path, opts...)
}

// parseInterval 解析轮转周期名称
func parseInterval(name string) (xrolling.Interval, error) {
	switch name {
	case "never":
		return xrolling.Never, nil
	case "minutely":
		return xrolling.EveryMinute, nil
	case "hourly":
		return xrolling.Hourly, nil
	case "daily":
		return xrolling.Daily, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInterval, name)
	}
}

// parseOverflow 解析溢出策略名称
func parseOverflow(name string) (xrolling.Overflow, error) {
	switch name {
	case "drop_newest":
		return xrolling.DropNewest, nil
	case "drop_oldest":
		return xrolling.DropOldest, nil
	case "block":
		return xrolling.Block, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOverflow, name)
	}
}
