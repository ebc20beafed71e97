package xsample

import (
	"github.com/omeyang/logkit/pkg/core/xfilter"
	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// sampledMatcher 在基础过滤之上叠加采样的组合谓词
type sampledMatcher struct {
	base    xfilter.Matcher
	sampler Sampler
	bypass  xrecord.Level
}

var _ xfilter.Matcher = (*sampledMatcher)(nil)

// ComposeOption 组合过滤器选项
type ComposeOption func(*sampledMatcher)

// WithBypassLevel 设置免采样级别
//
// 不低于该级别的日志跳过采样直接放行（仍需通过基础过滤）。
// 默认为 [xrecord.LevelOff]，即所有级别都参与采样。
// 常见配置是 LevelWarn：告警及以上不丢。
func WithBypassLevel(level xrecord.Level) ComposeOption {
	return func(m *sampledMatcher) {
		m.bypass = level
	}
}

// Compose 将采样器叠加到基础过滤器上，返回可用于 Dispatch 的 Matcher
//
// 求值顺序：先基础过滤（便宜且确定），通过后再采样。
// 基础过滤拒绝的日志不消耗采样决策，保证采样率语义作用于
// "本应输出" 的日志集合。
func Compose(base xfilter.Matcher, sampler Sampler, opts ...ComposeOption) (xfilter.Matcher, error) {
	if base == nil {
		return nil, ErrNilMatcher
	}
	if sampler == nil {
		return nil, ErrNilSampler
	}

	m := &sampledMatcher{
		base:    base,
		sampler: sampler,
		bypass:  xrecord.LevelOff,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// Matches 实现 xfilter.Matcher 接口
func (m *sampledMatcher) Matches(target string, level xrecord.Level) bool {
	if !m.base.Matches(target, level) {
		return false
	}
	if level.AtLeast(m.bypass) {
		return true
	}
	return m.sampler.ShouldSample(target, level)
}
