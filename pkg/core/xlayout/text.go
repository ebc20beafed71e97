package xlayout

import (
	"bytes"
	"strconv"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// DefaultTimeLayout 文本布局默认时间格式（毫秒用逗号分隔）
const DefaultTimeLayout = "2006-01-02 15:04:05,000"

// Text 人类可读的单行文本布局
//
// 输出格式：
//
//	2024-08-11 19:39:52,583 ERROR app::core: main.go:32 Hello error! key=value
//
// 级别右对齐 5 列；源码位置仅在 Record 携带且未禁用时输出；
// 字段按插入顺序以 key=value 追加在消息之后。
// 不做终端着色（外围渲染层的职责）。
type Text struct {
	timeLayout string
	noSource   bool
}

var _ Layout = (*Text)(nil)

// TextOption 文本布局选项
type TextOption func(*Text)

// WithTimeLayout 自定义时间格式（Go time layout 语法）
//
// 空字符串被忽略，保持默认格式。
func WithTimeLayout(layout string) TextOption {
	return func(t *Text) {
		if layout != "" {
			t.timeLayout = layout
		}
	}
}

// WithoutSource 不输出源码位置（即使 Record 携带）
func WithoutSource() TextOption {
	return func(t *Text) {
		t.noSource = true
	}
}

// NewText 创建文本布局
func NewText(opts ...TextOption) *Text {
	t := &Text{timeLayout: DefaultTimeLayout}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Render 实现 Layout 接口
func (t *Text) Render(rec *xrecord.Record) []byte {
	var buf bytes.Buffer
	// 预估：时间 23 + 级别 6 + 其余文本
	buf.Grow(64 + len(rec.Target) + len(rec.Message))

	buf.WriteString(rec.Time.Format(t.timeLayout))
	buf.WriteByte(' ')

	// 级别右对齐 5 列（最长常规级别名为 5 字符）
	level := rec.Level.String()
	for i := len(level); i < 5; i++ {
		buf.WriteByte(' ')
	}
	buf.WriteString(level)

	buf.WriteByte(' ')
	buf.WriteString(rec.Target)
	buf.WriteString(": ")

	if rec.HasSource() && !t.noSource {
		buf.WriteString(rec.File)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(rec.Line))
		buf.WriteByte(' ')
	}

	buf.WriteString(rec.Message)

	for _, f := range rec.Fields {
		buf.WriteByte(' ')
		buf.WriteString(f.Key)
		buf.WriteByte('=')
		buf.WriteString(f.Text())
	}

	buf.WriteByte('\n')
	return buf.Bytes()
}
