package xsample

import (
	"math"
	"math/rand/v2"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// Sampler 采样策略接口
//
// 返回 true 表示放行该日志，false 表示按采样丢弃。
// 实现必须并发安全；采样丢弃不计入管道的丢弃统计，它是调用方
// 显式配置的降噪手段而非故障。
type Sampler interface {
	// ShouldSample 判断给定 target 与级别的日志是否放行
	ShouldSample(target string, level xrecord.Level) bool
}

// validateRate 校验采样比率
func validateRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return ErrInvalidRate
	}
	return nil
}

// RandomSampler 按固定比率随机采样
type RandomSampler struct {
	rate float64
}

// NewRandomSampler 创建随机采样器
//
// rate 为 [0.0, 1.0] 的采样比率，超出范围或为 NaN 返回 [ErrInvalidRate]。
func NewRandomSampler(rate float64) (*RandomSampler, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	return &RandomSampler{rate: rate}, nil
}

// ShouldSample 实现 Sampler 接口
//
// math/rand/v2 的全局源并发安全，无需额外加锁。
func (s *RandomSampler) ShouldSample(string, xrecord.Level) bool {
	if s.rate <= 0 {
		return false
	}
	if s.rate >= 1 {
		return true
	}
	return rand.Float64() < s.rate
}

// Rate 返回当前采样比率
func (s *RandomSampler) Rate() float64 {
	return s.rate
}

var _ Sampler = (*RandomSampler)(nil)
