package xlayout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// jsonTimeLayout 机器可读布局的时间格式：RFC3339 含时区偏移，毫秒精度
const jsonTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// JSON 机器可读布局：一条 Record 渲染为一个 JSON 对象加换行
//
// 键名固定：ts/level/target/msg，可选 file/line，字段收敛在 fields
// 对象中并保持插入顺序。该格式是对外契约（外部日志采集工具可能
// 依赖），[ParseRecord] 提供反向解析。
//
// 设计决策: fields 使用手写序列化而非 map——encoding/json 对 map 按
// key 排序，会破坏字段插入顺序这一数据模型约定。
type JSON struct{}

var _ Layout = (*JSON)(nil)

// NewJSON 创建 JSON 布局
func NewJSON() *JSON {
	return &JSON{}
}

// Render 实现 Layout 接口
//
// 单个字段值序列化失败时退化为该值的 %v 字符串，整条渲染永不失败。
func (j *JSON) Render(rec *xrecord.Record) []byte {
	var buf bytes.Buffer
	buf.Grow(96 + len(rec.Target) + len(rec.Message))

	buf.WriteString(`{"ts":`)
	writeJSONString(&buf, rec.Time.Format(jsonTimeLayout))
	buf.WriteString(`,"level":`)
	writeJSONString(&buf, rec.Level.String())
	buf.WriteString(`,"target":`)
	writeJSONString(&buf, rec.Target)
	buf.WriteString(`,"msg":`)
	writeJSONString(&buf, rec.Message)

	if rec.HasSource() {
		buf.WriteString(`,"file":`)
		writeJSONString(&buf, rec.File)
		buf.WriteString(`,"line":`)
		fmt.Fprintf(&buf, "%d", rec.Line)
	}

	if len(rec.Fields) > 0 {
		buf.WriteString(`,"fields":{`)
		for i, f := range rec.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(&buf, f.Key)
			buf.WriteByte(':')
			writeJSONValue(&buf, f)
		}
		buf.WriteByte('}')
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// writeJSONString 写入一个 JSON 字符串字面量
//
// json.Marshal 对纯字符串不会失败（无循环引用、无不可序列化类型）。
func writeJSONString(buf *bytes.Buffer, s string) {
	data, err := json.Marshal(s)
	if err != nil {
		// 理论上不可达，兜底保证渲染不失败
		buf.WriteString(`""`)
		return
	}
	buf.Write(data)
}

// writeJSONValue 按 Kind 写入字段值
func writeJSONValue(buf *bytes.Buffer, f xrecord.Field) {
	switch f.Kind {
	case xrecord.KindString:
		if s, ok := f.Value.(string); ok {
			writeJSONString(buf, s)
			return
		}
	case xrecord.KindInt64:
		if n, ok := f.Value.(int64); ok {
			fmt.Fprintf(buf, "%d", n)
			return
		}
	case xrecord.KindFloat64:
		if v, ok := f.Value.(float64); ok {
			// NaN/Inf 不是合法 JSON，退化为字符串
			if data, err := json.Marshal(v); err == nil {
				buf.Write(data)
				return
			}
		}
	case xrecord.KindBool:
		if b, ok := f.Value.(bool); ok {
			if b {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
			return
		}
	}
	// KindAny 与 Kind 不匹配的值：调试渲染为字符串
	writeJSONString(buf, f.Text())
}

// ParsedRecord 从 JSON 布局输出解析回的记录
//
// Fields 保持原始插入顺序。时间还原为带时区偏移的 time.Time。
type ParsedRecord struct {
	Level  xrecord.Level
	Time   time.Time
	Target string
	Msg    string
	File   string
	Line   int
	Fields []xrecord.Field
}

// ParseRecord 解析一行 JSON 布局输出
//
// 与 [JSON.Render] 构成往返：Render 后 Parse 得到的记录在所有
// 封闭类型集合内的字段上与原 Record 相等。
// 仅供测试与外部消费方使用，不在日志热路径上。
func ParseRecord(line []byte) (*ParsedRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimSpace(line)))
	dec.UseNumber()

	var raw struct {
		TS     string          `json:"ts"`
		Level  string          `json:"level"`
		Target string          `json:"target"`
		Msg    string          `json:"msg"`
		File   string          `json:"file"`
		Line   int             `json:"line"`
		Fields json.RawMessage `json:"fields"`
	}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("xlayout: parse record: %w", err)
	}

	ts, err := time.Parse(jsonTimeLayout, raw.TS)
	if err != nil {
		return nil, fmt.Errorf("xlayout: parse record ts: %w", err)
	}
	level, err := xrecord.ParseLevel(raw.Level)
	if err != nil {
		return nil, fmt.Errorf("xlayout: parse record level: %w", err)
	}

	rec := &ParsedRecord{
		Level:  level,
		Time:   ts,
		Target: raw.Target,
		Msg:    raw.Msg,
		File:   raw.File,
		Line:   raw.Line,
	}

	if len(raw.Fields) > 0 {
		fields, err := parseFields(raw.Fields)
		if err != nil {
			return nil, err
		}
		rec.Fields = fields
	}
	return rec, nil
}

// parseFields 按出现顺序解析 fields 对象
//
// encoding/json 反序列化到 map 会丢失键序，这里用 token 流保序。
func parseFields(data []byte) ([]xrecord.Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	// 开括号
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("xlayout: parse fields: %w", err)
	}

	var fields []xrecord.Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("xlayout: parse fields: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("xlayout: parse fields: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("xlayout: parse fields: %w", err)
		}
		// Render 只输出标量，嵌套结构意味着不是本布局的产物
		if _, isDelim := valTok.(json.Delim); isDelim {
			return nil, fmt.Errorf("xlayout: parse fields: nested value for key %q", key)
		}
		fields = append(fields, tokenToField(key, valTok))
	}

	// 闭括号
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("xlayout: parse fields: %w", err)
	}
	return fields, nil
}

// tokenToField 将 JSON token 还原为类型化字段
//
// 无小数点和指数的数字还原为 KindInt64，其余数字为 KindFloat64，
// 与 Render 的类型投影一致。
func tokenToField(key string, tok json.Token) xrecord.Field {
	switch v := tok.(type) {
	case string:
		return xrecord.String(key, v)
	case bool:
		return xrecord.Bool(key, v)
	case json.Number:
		s := v.String()
		if !bytes.ContainsAny([]byte(s), ".eE") {
			if n, err := v.Int64(); err == nil {
				return xrecord.Int64(key, n)
			}
		}
		if f, err := v.Float64(); err == nil {
			return xrecord.Float64(key, f)
		}
		return xrecord.Any(key, s)
	case nil:
		return xrecord.Any(key, nil)
	default:
		return xrecord.Any(key, v)
	}
}
