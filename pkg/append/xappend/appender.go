package xappend

import (
	"context"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// Appender 多态日志出口：把一条日志投递到某个目的地
//
// 实现必须并发安全。Append 返回的错误由 Dispatch 上报到错误通道，
// 永远不会传回应用的日志调用点。
//
// 扩展新实现时的约定：
//   - Append 不得无限期阻塞（异步实现在队列满时按溢出策略处理）
//   - Flush 阻塞直到此前 Append 的数据全部处理完成
//   - Shutdown 幂等；之后的 Append 应返回 [ErrShutdown]
type Appender interface {
	// Append 投递一条日志
	//
	// line 是 Layout 的渲染结果；RequiresBytes 为 false 的实现
	// （直接消费 Record 的结构化出口）收到的 line 为 nil。
	// 实现不得持有 line 超出本次调用（异步实现须自行拷贝或独占）。
	Append(rec *xrecord.Record, line []byte) error

	// Flush 同步点：阻塞直到已投递的日志全部处理完成
	Flush(ctx context.Context) error

	// Shutdown 优雅关闭：排空已投递的日志并释放资源
	Shutdown(ctx context.Context) error

	// RequiresBytes 声明是否需要 Layout 渲染结果
	RequiresBytes() bool
}
