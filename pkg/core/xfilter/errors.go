package xfilter

import "errors"

// 配置校验错误，均在构造期返回，日志热路径不产生错误
var (
	// ErrEmptySpec 指令字符串为空
	ErrEmptySpec = errors.New("xfilter: directive spec is empty")

	// ErrBadDirective 指令语法错误（缺少 target、级别名非法等）
	ErrBadDirective = errors.New("xfilter: malformed directive")

	// ErrDuplicateDefault 指令字符串中出现多个默认级别
	ErrDuplicateDefault = errors.New("xfilter: duplicate default level")

	// ErrInvalidDefault 默认级别非法
	ErrInvalidDefault = errors.New("xfilter: invalid default level")
)
