package xlayout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

func fixedTime() time.Time {
	return time.Date(2024, 8, 11, 19, 39, 52, 583_000_000, time.UTC)
}

// TestTextRenderBasic 测试基本文本渲染格式
func TestTextRenderBasic(t *testing.T) {
	rec := xrecord.New(xrecord.LevelError, "app::core", "Hello error!",
		xrecord.WithTime(fixedTime()))

	got := string(NewText().Render(rec))
	assert.Equal(t, "2024-08-11 19:39:52,583 ERROR app::core: Hello error!\n", got)
}

// TestTextRenderLevelAlignment 测试级别右对齐 5 列
func TestTextRenderLevelAlignment(t *testing.T) {
	rec := xrecord.New(xrecord.LevelInfo, "app", "msg",
		xrecord.WithTime(fixedTime()))

	got := string(NewText().Render(rec))
	assert.Contains(t, got, "  INFO app: ")
}

// TestTextRenderFields 测试字段按插入顺序渲染
func TestTextRenderFields(t *testing.T) {
	rec := xrecord.New(xrecord.LevelWarn, "app", "msg",
		xrecord.WithTime(fixedTime()),
		xrecord.WithFields(
			xrecord.String("b", "2"),
			xrecord.String("a", "1"),
			xrecord.Int("n", 42),
			xrecord.Bool("ok", true),
		))

	got := string(NewText().Render(rec))
	assert.Contains(t, got, "msg b=2 a=1 n=42 ok=true\n")
}

// TestTextRenderSource 测试源码位置输出与禁用
func TestTextRenderSource(t *testing.T) {
	rec := xrecord.New(xrecord.LevelDebug, "app", "msg",
		xrecord.WithTime(fixedTime()))
	rec.File = "main.go"
	rec.Line = 32

	assert.Contains(t, string(NewText().Render(rec)), "app: main.go:32 msg")
	assert.NotContains(t, string(NewText(WithoutSource()).Render(rec)), "main.go")
}

// TestTextRenderCustomTimeLayout 测试自定义时间格式
func TestTextRenderCustomTimeLayout(t *testing.T) {
	rec := xrecord.New(xrecord.LevelInfo, "app", "msg",
		xrecord.WithTime(fixedTime()))

	got := string(NewText(WithTimeLayout("15:04:05")).Render(rec))
	assert.Contains(t, got, "19:39:52 ")
}

// TestTextRenderDeterministic 测试相同 Record 输出确定
func TestTextRenderDeterministic(t *testing.T) {
	rec := xrecord.New(xrecord.LevelInfo, "app", "msg",
		xrecord.WithTime(fixedTime()),
		xrecord.WithFields(xrecord.Any("v", map[int]int{1: 2})))

	layout := NewText()
	first := layout.Render(rec)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, layout.Render(rec))
	}
}

// TestTextRenderEndsWithNewline 测试输出以换行结尾
func TestTextRenderEndsWithNewline(t *testing.T) {
	rec := xrecord.New(xrecord.LevelInfo, "app", "msg")
	got := NewText().Render(rec)
	require.NotEmpty(t, got)
	assert.Equal(t, byte('\n'), got[len(got)-1])
}
