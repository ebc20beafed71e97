// Package xfilter 提供基于 target 前缀与级别的日志过滤。
//
// # 指令模型
//
// Filter 由一组有序的 (前缀, 最低级别) 指令加一个默认级别构成。
// 求值时选择与 target 前缀匹配中最长的指令，无命中时落到默认级别，
// 日志级别不低于选中的最低级别则放行。
//
// 等长前缀冲突固定为后注册者胜出，该行为由测试钉住。
//
// # 指令字符串
//
// [Parse] 支持紧凑语法 `target=level,target2=level2,...`，可追加一个
// 裸级别名（或 `|level`）作为默认级别，级别名大小写不敏感。
// 语法错误在构造期 fail fast，不会推迟到日志调用时。
//
// # 并发与性能
//
// Filter 构造后不可变，可被所有生产者 goroutine 无锁共享。
// (target, level) 决策缓存基于 hashicorp/golang-lru/v2：指令集不可变，
// 缓存项永不失效，动态 target 场景由 LRU 容量兜底。
package xfilter
