package xappend

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// Console 立即写出的同步 Appender
//
// Append 在调用者线程上直接执行一次写入，互斥锁保证单条日志
// 不与其他条目交错。适合 stderr/stdout 等低延迟目的地；
// 磁盘文件请使用 xrolling 的异步写入器。
type Console struct {
	mu sync.Mutex
	w  io.Writer

	closed bool
}

var _ Appender = (*Console)(nil)

// NewConsole 创建控制台 Appender
//
// w 为 nil 时默认输出到 os.Stderr。
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{w: w}
}

// Append 实现 Appender 接口：同步写出一行
func (c *Console) Append(_ *xrecord.Record, line []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrShutdown
	}
	_, err := c.w.Write(line)
	return err
}

// Flush 实现 Appender 接口
//
// 写入是同步的，没有待刷内容；若底层 writer 支持 Sync（如 *os.File）
// 则触发一次 OS 刷盘。
func (c *Console) Flush(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	if s, ok := c.w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// Shutdown 实现 Appender 接口，幂等
//
// 不关闭底层 writer：stderr/stdout 归宿主进程所有。
func (c *Console) Shutdown(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// RequiresBytes 实现 Appender 接口：消费 Layout 渲染结果
func (c *Console) RequiresBytes() bool {
	return true
}
