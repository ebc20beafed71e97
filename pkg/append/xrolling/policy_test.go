package xrolling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntervalTruncate 测试周期起点对齐
func TestIntervalTruncate(t *testing.T) {
	base := time.Date(2024, 8, 11, 19, 39, 52, 583_000_000, time.UTC)

	tests := []struct {
		name     string
		interval Interval
		want     time.Time
	}{
		{"every_minute", EveryMinute, time.Date(2024, 8, 11, 19, 39, 0, 0, time.UTC)},
		{"hourly", Hourly, time.Date(2024, 8, 11, 19, 0, 0, 0, time.UTC)},
		{"daily", Daily, time.Date(2024, 8, 11, 0, 0, 0, 0, time.UTC)},
		{"never", Never, base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.interval.truncate(base)))
		})
	}
}

// TestIntervalNext 测试下一个轮转边界
func TestIntervalNext(t *testing.T) {
	base := time.Date(2024, 8, 11, 19, 39, 52, 0, time.UTC)

	tests := []struct {
		name     string
		interval Interval
		want     time.Time
	}{
		{"every_minute", EveryMinute, time.Date(2024, 8, 11, 19, 40, 0, 0, time.UTC)},
		{"hourly", Hourly, time.Date(2024, 8, 11, 20, 0, 0, 0, time.UTC)},
		{"daily", Daily, time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.interval.next(base)))
		})
	}
}

// TestIntervalNextNever 测试 Never 无时间边界
func TestIntervalNextNever(t *testing.T) {
	assert.True(t, Never.next(time.Now()).IsZero())
}

// TestIntervalNextCrossesDay 测试跨日/跨月边界
func TestIntervalNextCrossesDay(t *testing.T) {
	// 月末最后一小时
	base := time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC)
	assert.True(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Equal(Hourly.next(base)))
	assert.True(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Equal(Daily.next(base)))
}

// TestIntervalSuffix 测试文件名日期后缀（对外契约）
func TestIntervalSuffix(t *testing.T) {
	base := time.Date(2024, 8, 11, 19, 39, 52, 0, time.UTC)

	tests := []struct {
		name     string
		interval Interval
		want     string
	}{
		{"never", Never, ""},
		{"every_minute", EveryMinute, "2024-08-11-19-39"},
		{"hourly", Hourly, "2024-08-11-19"},
		{"daily", Daily, "2024-08-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.interval.suffix(base))
		})
	}
}

// TestIntervalString 测试周期可读名称
func TestIntervalString(t *testing.T) {
	assert.Equal(t, "never", Never.String())
	assert.Equal(t, "minutely", EveryMinute.String())
	assert.Equal(t, "hourly", Hourly.String())
	assert.Equal(t, "daily", Daily.String())
	assert.Equal(t, "interval(99)", Interval(99).String())
}

// TestOverflowString 测试溢出策略可读名称
func TestOverflowString(t *testing.T) {
	assert.Equal(t, "drop_newest", DropNewest.String())
	assert.Equal(t, "drop_oldest", DropOldest.String())
	assert.Equal(t, "block", Block.String())
	assert.Equal(t, "unknown", Overflow(99).String())
}

// TestManualClock 测试手动时钟
func TestManualClock(t *testing.T) {
	start := time.Date(2024, 8, 11, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	require.True(t, start.Equal(clock.Now()))

	clock.Advance(time.Hour)
	assert.True(t, start.Add(time.Hour).Equal(clock.Now()))

	next := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock.Set(next)
	assert.True(t, next.Equal(clock.Now()))
}
