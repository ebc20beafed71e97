package xrolling

import (
	"sync"
	"time"
)

// Clock 提供当前时间，轮转边界判定的唯一时间来源
//
// 生产环境使用系统时钟；测试通过 [NewManualClock] 注入可控时间，
// 避免时间型轮转测试依赖真实墙钟。
type Clock interface {
	Now() time.Time
}

// systemClock 系统墙钟
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock 返回系统墙钟
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock 手动推进的时钟，仅用于测试
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ Clock = (*ManualClock)(nil)

// NewManualClock 创建固定在 t 的手动时钟
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
}

// Now 实现 Clock 接口
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set 重置当前时间
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance 前进指定时长
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
