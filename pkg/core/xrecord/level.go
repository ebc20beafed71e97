package xrecord

import (
	"fmt"
	"strings"
)

// Level 日志级别，数值越大严重程度越高
type Level int8

// 日志级别常量，按严重程度递增排列
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError

	// LevelOff 特殊级别：高于所有常规级别，作为过滤器默认值时拒绝全部日志。
	// 不允许出现在 Record 中。
	LevelOff
)

// String 返回级别的大写字符串表示
//
// 非法级别返回 "LEVEL(n)" 形式，便于调试时暴露问题而非静默吞没。
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
}

// MarshalText 实现 encoding.TextMarshaler 接口
//
// 支持配置序列化场景（YAML/JSON）。
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
//
// 支持从配置文件直接反序列化日志级别。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// AtLeast 判断当前级别是否不低于 min（即至少同等严重）
func (l Level) AtLeast(min Level) bool {
	return l >= min
}

// Valid 判断是否为可出现在 Record 中的常规级别
func (l Level) Valid() bool {
	return l >= LevelTrace && l <= LevelError
}

// ParseLevel 解析字符串为日志级别
// 支持 trace/debug/info/warn/warning/error/off（大小写不敏感）
// 输入会自动 TrimSpace
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "off":
		return LevelOff, nil
	default:
		return LevelInfo, fmt.Errorf("xrecord: unknown level %q", s)
	}
}
