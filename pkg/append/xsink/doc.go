// Package xsink 提供结构化日志的下游导出端。
//
// Sink 消费结构化 Record 而非渲染字节，与文件类写入器互补：
// 文件负责本地留存，Sink 负责把日志送进追踪/采集基础设施。
//
// # 当前实现
//
//   - [NewOTel]: 把日志记录导出为当前 span 上的事件
//   - [NewBreaker]: 熔断装饰器，隔离持续失败的下游
//
// [NewAppender] 把任意 Sink 适配为 xappend.Appender，
// 接入统一的分发管道（RequiresBytes 为 false，跳过渲染）。
package xsink
