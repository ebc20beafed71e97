package xfilter

import (
	"fmt"
	"strings"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// Directive 一条过滤指令：target 前缀到最低级别的映射
type Directive struct {
	// Prefix target 前缀，空字符串匹配所有 target
	Prefix string

	// Min 命中该指令时要求的最低级别
	Min xrecord.Level
}

// Parse 解析紧凑指令字符串为 Filter
//
// 语法：`<target>=<level>(,<target>=<level>)*`，可附加一个裸级别名作为
// 默认级别。默认级别既可以作为逗号分隔的裸条目出现，也可以用 `|` 分隔
// 追加在末尾，两种写法等价：
//
//	"app=debug,app::storage=warn,info"
//	"app=debug,app::storage=warn|info"
//
// 级别名大小写不敏感。任何语法错误在此处 fail fast 返回
// [ErrBadDirective]，而不是推迟到日志调用时。
// 未指定默认级别时默认为 info。
func Parse(spec string) (*Filter, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, ErrEmptySpec
	}

	b := NewBuilder()
	hasDefault := false

	setDefault := func(token string) error {
		if hasDefault {
			return fmt.Errorf("%w: %q", ErrDuplicateDefault, token)
		}
		level, err := xrecord.ParseLevel(token)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDefault, token)
		}
		b.Default(level)
		hasDefault = true
		return nil
	}

	body := spec
	if idx := strings.IndexByte(spec, '|'); idx >= 0 {
		tail := spec[idx+1:]
		if strings.ContainsRune(tail, '|') {
			return nil, fmt.Errorf("%w: multiple '|' separators", ErrBadDirective)
		}
		if err := setDefault(tail); err != nil {
			return nil, err
		}
		body = spec[:idx]
	}

	for _, entry := range strings.Split(body, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		eq := strings.IndexByte(entry, '=')
		if eq < 0 {
			// 裸级别名条目作为默认级别
			if err := setDefault(entry); err != nil {
				return nil, err
			}
			continue
		}

		target := strings.TrimSpace(entry[:eq])
		levelName := strings.TrimSpace(entry[eq+1:])
		if target == "" {
			return nil, fmt.Errorf("%w: missing target in %q", ErrBadDirective, entry)
		}
		level, err := xrecord.ParseLevel(levelName)
		if err != nil {
			return nil, fmt.Errorf("%w: bad level in %q", ErrBadDirective, entry)
		}
		b.Directive(target, level)
	}

	return b.Build()
}
