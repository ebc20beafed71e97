package xrecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLevelOrdering 验证级别按严重程度递增排列
func TestLevelOrdering(t *testing.T) {
	assert.True(t, LevelTrace < LevelDebug)
	assert.True(t, LevelDebug < LevelInfo)
	assert.True(t, LevelInfo < LevelWarn)
	assert.True(t, LevelWarn < LevelError)
	assert.True(t, LevelError < LevelOff)
}

// TestLevelAtLeast 验证严重程度比较语义
func TestLevelAtLeast(t *testing.T) {
	assert.True(t, LevelError.AtLeast(LevelInfo))
	assert.True(t, LevelInfo.AtLeast(LevelInfo))
	assert.False(t, LevelDebug.AtLeast(LevelInfo))
	// Off 作为最小级别时拒绝所有常规级别
	assert.False(t, LevelError.AtLeast(LevelOff))
}

// TestParseLevel 测试级别字符串解析
func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{"  Info  ", LevelInfo, false},
		{"", LevelInfo, true},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLevelString 测试级别字符串表示
func TestLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", LevelTrace.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "OFF", LevelOff.String())
	assert.Equal(t, "LEVEL(99)", Level(99).String())
}

// TestLevelTextRoundTrip 测试 TextMarshaler/TextUnmarshaler 往返
func TestLevelTextRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError} {
		data, err := l.MarshalText()
		require.NoError(t, err)

		var got Level
		require.NoError(t, got.UnmarshalText(data))
		assert.Equal(t, l, got)
	}
}
