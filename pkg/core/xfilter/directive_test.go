package xfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// TestParseBasic 测试基本指令字符串解析
func TestParseBasic(t *testing.T) {
	f, err := Parse("app=debug,app::storage=warn")
	require.NoError(t, err)

	assert.Equal(t, xrecord.LevelDebug, f.MinLevel("app::core"))
	assert.Equal(t, xrecord.LevelWarn, f.MinLevel("app::storage::mongo"))
	// 未命中走默认 info
	assert.Equal(t, xrecord.LevelInfo, f.MinLevel("other"))
}

// TestParseBareDefault 测试裸级别名作为默认级别
func TestParseBareDefault(t *testing.T) {
	f, err := Parse("app=debug,warn")
	require.NoError(t, err)

	assert.Equal(t, xrecord.LevelDebug, f.MinLevel("app"))
	assert.Equal(t, xrecord.LevelWarn, f.MinLevel("other"))
}

// TestParsePipeDefault 测试 `|level` 形式的默认级别
func TestParsePipeDefault(t *testing.T) {
	f, err := Parse("app=debug,app::storage=warn|error")
	require.NoError(t, err)

	assert.Equal(t, xrecord.LevelDebug, f.MinLevel("app"))
	assert.Equal(t, xrecord.LevelError, f.MinLevel("other"))
}

// TestParseCaseInsensitive 测试级别名大小写不敏感
func TestParseCaseInsensitive(t *testing.T) {
	f, err := Parse("App=DEBUG,Warn")
	require.NoError(t, err)

	// target 大小写保留，级别大小写不敏感
	assert.Equal(t, xrecord.LevelDebug, f.MinLevel("App::x"))
	assert.Equal(t, xrecord.LevelWarn, f.MinLevel("app"))
}

// TestParseErrors 测试语法错误在构造期 fail fast
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr error
	}{
		{"空字符串", "", ErrEmptySpec},
		{"纯空白", "   ", ErrEmptySpec},
		{"缺少 target", "=debug", ErrBadDirective},
		{"非法级别", "app=loud", ErrBadDirective},
		{"非法裸级别", "app=debug,loud", ErrInvalidDefault},
		{"重复默认级别", "info,warn", ErrDuplicateDefault},
		{"裸级别与管道默认并存", "app=debug,info|warn", ErrDuplicateDefault},
		{"多个管道分隔符", "app=debug|info|warn", ErrBadDirective},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestParseSkipsEmptyEntries 测试空条目（多余逗号）被忽略
func TestParseSkipsEmptyEntries(t *testing.T) {
	f, err := Parse("app=debug,,")
	require.NoError(t, err)
	assert.Equal(t, xrecord.LevelDebug, f.MinLevel("app"))
}
