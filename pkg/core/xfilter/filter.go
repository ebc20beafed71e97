package xfilter

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// decisionCacheSize 过滤决策缓存容量
//
// 进程内活跃 target 数量通常远小于此值；缓存 key 为 (target, level)，
// 上限存在只为防御动态生成 target 的极端场景。
const decisionCacheSize = 1024

// Matcher 过滤谓词接口
//
// Dispatch 只依赖此接口，采样器、组合过滤器与 [Filter] 均可实现。
// 实现必须是并发安全且确定性的：相同 (target, level) 重复求值
// 结果一致。
type Matcher interface {
	// Matches 判断给定 target 与级别的日志是否放行
	Matches(target string, level xrecord.Level) bool
}

// Filter 基于有序指令集的级别过滤器
//
// 构造后不可变，可被所有生产者 goroutine 无锁只读共享。
// 求值规则：选择与 target 前缀匹配中最长的指令；无命中时使用默认级别；
// 日志级别不低于选中指令的最低级别则放行。
//
// 设计决策: 等长前缀的归属关系未在任何公开资料中明确，这里固定为
// "后注册者胜出"并由测试钉住，避免隐式依赖指令排序的微妙 bug。
type Filter struct {
	directives []Directive
	def        xrecord.Level
	cache      *lru.Cache[cacheKey, bool]
}

type cacheKey struct {
	target string
	level  xrecord.Level
}

// 编译时断言
var _ Matcher = (*Filter)(nil)

// Builder Filter 构建器
//
// 指令按注册顺序保存；Build 之后 Builder 不可复用。
type Builder struct {
	directives []Directive
	def        xrecord.Level
}

// NewBuilder 创建 Filter 构建器，默认级别为 info
func NewBuilder() *Builder {
	return &Builder{def: xrecord.LevelInfo}
}

// Directive 注册一条 (前缀, 最低级别) 指令
//
// 等长前缀冲突时后注册的指令胜出。
func (b *Builder) Directive(prefix string, min xrecord.Level) *Builder {
	b.directives = append(b.directives, Directive{Prefix: prefix, Min: min})
	return b
}

// Default 设置无指令命中时的默认最低级别
//
// 传入 [xrecord.LevelOff] 表示未命中指令的日志全部拒绝。
func (b *Builder) Default(min xrecord.Level) *Builder {
	b.def = min
	return b
}

// Build 构建不可变的 Filter
func (b *Builder) Build() (*Filter, error) {
	// lru.New 仅在容量 <= 0 时返回错误，此处容量为正常量，不会失败
	cache, err := lru.New[cacheKey, bool](decisionCacheSize)
	if err != nil {
		return nil, err
	}

	directives := make([]Directive, len(b.directives))
	copy(directives, b.directives)

	return &Filter{
		directives: directives,
		def:        b.def,
		cache:      cache,
	}, nil
}

// Matches 实现 Matcher 接口
//
// 决策缓存键为 (target, level)：指令集不可变，因此缓存永不失效。
// lru/v2 内部自带锁，Filter 本身保持无锁只读。
func (f *Filter) Matches(target string, level xrecord.Level) bool {
	key := cacheKey{target: target, level: level}
	if pass, ok := f.cache.Get(key); ok {
		return pass
	}

	pass := level.AtLeast(f.resolve(target))
	f.cache.Add(key, pass)
	return pass
}

// MinLevel 返回给定 target 生效的最低级别（自省用）
func (f *Filter) MinLevel(target string) xrecord.Level {
	return f.resolve(target)
}

// Directives 返回指令副本（自省用）
func (f *Filter) Directives() []Directive {
	out := make([]Directive, len(f.directives))
	copy(out, f.directives)
	return out
}

// resolve 选择 target 生效的最低级别
//
// 最长前缀命中胜出；等长时保留靠后的指令（遍历使用 >= 比较实现
// "后注册者胜出"）。
func (f *Filter) resolve(target string) xrecord.Level {
	best := -1
	min := f.def
	for _, d := range f.directives {
		if !strings.HasPrefix(target, d.Prefix) {
			continue
		}
		if len(d.Prefix) >= best {
			best = len(d.Prefix)
			min = d.Min
		}
	}
	return min
}
