package xsample

import "errors"

// 采样器创建相关的错误
var (
	// ErrInvalidRate 采样比率不在 [0.0, 1.0] 范围内
	ErrInvalidRate = errors.New("xsample: rate must be in [0.0, 1.0]")

	// ErrNilKeyFunc KeyBasedSampler 的 keyFunc 为 nil
	ErrNilKeyFunc = errors.New("xsample: keyFunc must not be nil")

	// ErrNilMatcher 组合过滤器的基础 Matcher 为 nil
	ErrNilMatcher = errors.New("xsample: base matcher must not be nil")

	// ErrNilSampler 组合过滤器的采样器为 nil
	ErrNilSampler = errors.New("xsample: sampler must not be nil")
)
