// Package xdiag 是日志系统的进程内错误通道。
//
// 日志管道自身的故障（落盘失败、队列溢出丢弃、轮转失败、下游 sink
// 失败）不允许以错误形式传回应用的日志调用点，也不允许递归写回日志
// 管道。它们统一汇入 [Diagnostics]：
//
//   - 按 [Kind] 原子计数，[Snapshot] 供宿主应用观测
//   - 可选 [Handler] 回调（CAS 递归防护 + panic 隔离）
//   - 可选 otel 指标导出（[WithMeter]）：logkit.drops、
//     logkit.write_errors、logkit.sink_errors
//
// 所有方法对 nil *Diagnostics 安全，调用方无需判空。
package xdiag
