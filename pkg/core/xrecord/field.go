package xrecord

import "fmt"

// Kind 字段值的类型标记
//
// 封闭类型集合：字符串、整数、浮点、布尔，以及兜底的调试渲染类型。
// Layout 根据 Kind 决定序列化方式，KindAny 一律退化为 fmt 渲染。
type Kind int8

const (
	// KindString 字符串值
	KindString Kind = iota
	// KindInt64 有符号整数值
	KindInt64
	// KindFloat64 浮点值
	KindFloat64
	// KindBool 布尔值
	KindBool
	// KindAny 任意值，序列化时使用 fmt.Sprintf("%v") 调试渲染
	KindAny
)

// Field 一个有序的结构化键值对
//
// Record 中的字段保持插入顺序，Layout 按序渲染。
// 通过构造函数创建以保证 Kind 与 Value 一致；直接构造字面量时
// Kind 不匹配的值会在渲染时退化为调试渲染，不会失败。
type Field struct {
	Key   string
	Kind  Kind
	Value any
}

// String 创建字符串字段
func String(key, value string) Field {
	return Field{Key: key, Kind: KindString, Value: value}
}

// Int 创建整数字段
func Int(key string, value int) Field {
	return Field{Key: key, Kind: KindInt64, Value: int64(value)}
}

// Int64 创建 64 位整数字段
func Int64(key string, value int64) Field {
	return Field{Key: key, Kind: KindInt64, Value: value}
}

// Float64 创建浮点字段
func Float64(key string, value float64) Field {
	return Field{Key: key, Kind: KindFloat64, Value: value}
}

// Bool 创建布尔字段
func Bool(key string, value bool) Field {
	return Field{Key: key, Kind: KindBool, Value: value}
}

// Any 创建调试渲染字段
//
// 值在渲染时通过 fmt.Sprintf("%v") 转为字符串。
// 注意：值应当是不可变的或调用后不再修改，Record 构造后逻辑上只读共享。
func Any(key string, value any) Field {
	return Field{Key: key, Kind: KindAny, Value: value}
}

// Err 创建错误字段，key 固定为 "error"
//
// nil 错误渲染为空字符串而非 "<nil>"。
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Kind: KindString, Value: ""}
	}
	return Field{Key: "error", Kind: KindString, Value: err.Error()}
}

// Text 返回字段值的字符串形式
//
// Layout 的公共渲染入口：根据 Kind 选择零分配友好的路径，
// Kind 与实际值不匹配时兜底为调试渲染，保证渲染永不失败。
func (f Field) Text() string {
	switch f.Kind {
	case KindString:
		if s, ok := f.Value.(string); ok {
			return s
		}
	case KindInt64:
		if n, ok := f.Value.(int64); ok {
			return fmt.Sprintf("%d", n)
		}
	case KindFloat64:
		if v, ok := f.Value.(float64); ok {
			return fmt.Sprintf("%g", v)
		}
	case KindBool:
		if b, ok := f.Value.(bool); ok {
			if b {
				return "true"
			}
			return "false"
		}
	}
	return fmt.Sprintf("%v", f.Value)
}
