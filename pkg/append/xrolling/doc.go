// Package xrolling 提供滚动文件写入器。
//
// # 两种实现
//
//   - [New]: 异步滚动写入器。Append 只入队，唯一的 worker goroutine
//     负责落盘与轮转；支持时间周期（每分钟/每小时/每天）与大小上限
//     的组合轮转、三种队列溢出策略、按级别 fsync 与历史文件保留。
//   - [NewArchive]: 同步归档写入器。基于 lumberjack 的按大小轮转，
//     提供备份压缩与按天清理，写入延迟落在调用方线程上。
//
// # 文件命名（对外契约）
//
//	Never:       <base>.log
//	Daily:       <base>.2006-01-02.log
//	Hourly:      <base>.2006-01-02-15.log
//	EveryMinute: <base>.2006-01-02-15-04.log
//
// 同一时间窗口内因大小上限触发的轮转追加递增序号：
// <base>.2006-01-02.1.log、<base>.2006-01-02.2.log …。
// 历史文件一经写完不再改名，外部采集与清理工具可安全依赖。
//
// # 丢弃与故障可观测
//
// 队列溢出丢弃与落盘失败不打断日志调用点，统一上报到
// [xdiag.Diagnostics] 错误通道计数（WithDiagnostics 接入）。
//
// # 顺序与关停保证
//
// 单 worker 串行落盘：同一写入器内的日志严格按入队顺序写出，
// 单条写入不跨文件。Shutdown 排空队列、fsync 后关闭文件；
// 返回后每条已入队写入要么落盘、要么已计数上报为丢弃。
package xrolling
