package xfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// TestLongestPrefixMatch 验证最长前缀命中语义
func TestLongestPrefixMatch(t *testing.T) {
	f, err := NewBuilder().
		Directive("a", xrecord.LevelInfo).
		Directive("a::b", xrecord.LevelError).
		Build()
	require.NoError(t, err)

	// "a::b::c" 命中更长的 "a::b" 指令（Error）
	assert.False(t, f.Matches("a::b::c", xrecord.LevelWarn))
	assert.True(t, f.Matches("a::b::c", xrecord.LevelError))

	// "a::x" 只命中 "a" 指令（Info）
	assert.True(t, f.Matches("a::x", xrecord.LevelInfo))
	assert.False(t, f.Matches("a::x", xrecord.LevelDebug))
}

// TestEqualPrefixLastWins 验证等长前缀后注册者胜出
func TestEqualPrefixLastWins(t *testing.T) {
	f, err := NewBuilder().
		Directive("app", xrecord.LevelError).
		Directive("app", xrecord.LevelDebug).
		Build()
	require.NoError(t, err)

	assert.Equal(t, xrecord.LevelDebug, f.MinLevel("app::core"))
	assert.True(t, f.Matches("app::core", xrecord.LevelDebug))
}

// TestDefaultLevel 验证无指令命中时使用默认级别
func TestDefaultLevel(t *testing.T) {
	f, err := NewBuilder().
		Directive("app", xrecord.LevelDebug).
		Default(xrecord.LevelWarn).
		Build()
	require.NoError(t, err)

	assert.True(t, f.Matches("other", xrecord.LevelWarn))
	assert.False(t, f.Matches("other", xrecord.LevelInfo))
}

// TestDefaultOff 验证 Off 默认级别拒绝所有未命中日志
func TestDefaultOff(t *testing.T) {
	f, err := NewBuilder().
		Directive("app", xrecord.LevelInfo).
		Default(xrecord.LevelOff).
		Build()
	require.NoError(t, err)

	assert.True(t, f.Matches("app", xrecord.LevelInfo))
	assert.False(t, f.Matches("other", xrecord.LevelError))
}

// TestEmptyPrefixMatchesAll 验证空前缀指令匹配所有 target
func TestEmptyPrefixMatchesAll(t *testing.T) {
	f, err := NewBuilder().
		Directive("", xrecord.LevelTrace).
		Default(xrecord.LevelOff).
		Build()
	require.NoError(t, err)

	assert.True(t, f.Matches("anything", xrecord.LevelTrace))
}

// TestMatchesDeterministic 验证重复求值结果一致（含缓存路径）
func TestMatchesDeterministic(t *testing.T) {
	f, err := NewBuilder().
		Directive("a::b", xrecord.LevelWarn).
		Build()
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.True(t, f.Matches("a::b::c", xrecord.LevelWarn))
		assert.False(t, f.Matches("a::b::c", xrecord.LevelInfo))
	}
}

// TestMatchesConcurrent 验证并发只读求值安全
func TestMatchesConcurrent(t *testing.T) {
	f, err := NewBuilder().
		Directive("app", xrecord.LevelInfo).
		Build()
	require.NoError(t, err)

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 1000; i++ {
				f.Matches("app::worker", xrecord.LevelInfo)
				f.Matches("other", xrecord.LevelDebug)
			}
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
