// Package xappend 定义 Appender 接口与立即写出的控制台实现。
//
// Appender 是日志管道的出口抽象：{Append, Flush, Shutdown} 能力集，
// RequiresBytes 声明消费 Layout 渲染结果还是原始 Record（结构化
// 导出器走后者）。
//
// 实现变体：
//
//   - [NewConsole]: 调用者线程上的同步写出（本包）
//   - xrolling.New: 异步滚动文件写入（核心实现）
//   - xsink.NewAppender: 下游遥测 sink 适配
//
// Append 的错误由 Dispatch 汇入错误通道，不会传回日志调用点。
package xappend
