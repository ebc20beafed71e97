// Package xsample 提供日志采样策略，作为过滤器的叠加层使用。
//
// # 采样器
//
//   - [NewRandomSampler]: 固定比率随机采样
//   - [NewKeyBasedSampler]: 基于 key 的一致性采样（xxhash 确定性哈希），
//     相同 key 在所有进程中产生相同决策
//
// # 与过滤器组合
//
// [Compose] 把采样器叠加到任意 [xfilter.Matcher] 上，返回的组合谓词
// 可直接作为 Dispatch 的过滤器。先过滤后采样，采样率作用于"本应输出"
// 的日志集合。[WithBypassLevel] 可让高级别日志免于采样。
//
// 采样丢弃是调用方显式配置的降噪手段，不计入管道的丢弃统计。
package xsample
