package xsample

import (
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// KeyFunc 从 (target, level) 中提取采样 key 的函数
//
// 相同的 key 在相同比率下总是产生相同的采样决策。
// 返回空字符串时回退到随机采样：保持近似的采样率语义，
// 但失去跨进程一致性。
type KeyFunc func(target string, level xrecord.Level) string

// KeyBasedSampler 基于 key 的一致性采样策略
//
// 对相同的 key，在相同的 rate 下总是产生相同的采样决策。
// 典型用法是按 target 采样：同一模块的日志要么都放行要么都丢弃，
// 避免随机采样把一个模块的日志流切得支离破碎。
//
// 设计决策: 工厂函数返回具体类型而非 Sampler 接口，Rate() 提供的
// 自省能力无法通过接口获得。
type KeyBasedSampler struct {
	rate    float64
	keyFunc KeyFunc
}

// NewKeyBasedSampler 创建基于 key 的一致性采样器
//
// rate 为 [0.0, 1.0] 的采样比率；keyFunc 不能为 nil。
// 按 target 采样直接传 [TargetKey]。
func NewKeyBasedSampler(rate float64, keyFunc KeyFunc) (*KeyBasedSampler, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	if keyFunc == nil {
		return nil, ErrNilKeyFunc
	}
	return &KeyBasedSampler{rate: rate, keyFunc: keyFunc}, nil
}

// TargetKey 以 target 为采样 key 的 KeyFunc
func TargetKey(target string, _ xrecord.Level) string {
	return target
}

// ShouldSample 实现 Sampler 接口
func (s *KeyBasedSampler) ShouldSample(target string, level xrecord.Level) bool {
	if s.rate <= 0 {
		return false
	}
	if s.rate >= 1 {
		return true
	}

	key := s.keyFunc(target, level)
	// 设计决策: 空 key 回退到随机采样而非 fail-fast——key 提取失败
	// 不应导致采样功能整体失效，只是失去一致性保证。
	if key == "" {
		return rand.Float64() < s.rate
	}

	// xxhash 零分配确定性哈希：同一 key 在所有进程中产生相同哈希值
	hashValue := xxhash.Sum64String(key)

	// 归一化到 [0, 1]。float64 精度在 2^53 以上不精确，但 rate < 1 时
	// （rate>=1 有提前返回）normalized == 1.0 不会通过 < rate 判断，行为正确。
	normalized := float64(hashValue) / float64(math.MaxUint64)
	return normalized < s.rate
}

// Rate 返回当前采样比率
func (s *KeyBasedSampler) Rate() float64 {
	return s.rate
}

var _ Sampler = (*KeyBasedSampler)(nil)
