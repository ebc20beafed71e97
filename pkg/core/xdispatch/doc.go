// Package xdispatch 提供日志记录的分发管道。
//
// Pipeline 是记录的唯一入口，扇出到若干 Dispatch 分发单元；
// 每个单元自带过滤器、Layout 与一组写入器：
//
//	Record → Pipeline → Dispatch{Filter → Layout → Appenders}
//
// # 失败隔离
//
// 写入器互为独立故障域：一个写入器失败只影响它自己，失败通过
// xdiag 错误通道计数，日志调用点永远不会因为某个输出端故障而报错。
//
// # 不可变与热更新
//
// Pipeline 与 Dispatch 构建后不可变，热路径无锁。
// 运行期调整过滤级别或输出端的方式是构建新管道后整体替换
// （[SetDefault] 或调用方自己的原子指针）。
package xdispatch
