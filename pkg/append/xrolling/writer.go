package xrolling

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v5"

	"github.com/omeyang/logkit/pkg/append/xappend"
	"github.com/omeyang/logkit/pkg/core/xrecord"
	"github.com/omeyang/logkit/pkg/observability/xdiag"
	"github.com/omeyang/logkit/pkg/util/xfile"
)

// 落盘重试参数：只覆盖瞬时故障（EINTR、短暂的配额抖动），
// 持续性故障（磁盘满）快速失败交给错误通道。
const (
	writeRetryAttempts = 3
	writeRetryDelay    = 5 * time.Millisecond
)

// pendingWrite 生产者入队的一条待写日志
//
// 所有权随入队转移：data 是 Append 时的私有拷贝，出队后归 worker。
type pendingWrite struct {
	data  []byte
	level xrecord.Level
}

// ctrlReq 控制请求（flush / shutdown）
//
// 设计决策: 控制信号走独立的无缓冲通道而非混入数据队列。
// 混排哨兵会让 DropOldest 面临"弹出的最旧项是哨兵"的尴尬处境；
// 分离后溢出策略只作用于日志数据，控制语义保持精确。
type ctrlReq struct {
	shutdown bool
	ack      chan error
}

// Writer 异步滚动文件写入器
//
// 实现 [xappend.Appender]。Append 只入队不做文件 I/O；
// 唯一的 worker goroutine 独占文件句柄与全部轮转状态，
// 轮转与写入天然串行，单条写入永不跨越轮转边界。
//
// 状态机：Closed →（构造时开文件）Open →（边界触发）Rotating → Open
// →（Shutdown）ShuttingDown（FIFO 排空）→ Stopped（worker 退出）。
//
// # 磁盘文件命名（对外契约）
//
//	Daily:       <base>.2006-01-02.log
//	Hourly:      <base>.2006-01-02-15.log
//	EveryMinute: <base>.2006-01-02-15-04.log
//	Never:       <base>.log
//
// 配置大小上限后，同一时间窗口内因大小触发的轮转追加递增序号：
// <base>.2006-01-02.1.log、<base>.2006-01-02.2.log …（纯大小策略为
// <base>.1.log …）。文件只增不改名，外部轮转工具可安全依赖。
type Writer struct {
	cfg  config
	dir  string
	base string

	queue chan pendingWrite
	ctrl  chan ctrlReq

	closed atomic.Bool
	done   chan struct{}

	// 以下状态 worker goroutine 独占（构造期初始化一次，
	// goroutine 启动构成 happens-before），无锁
	file         *os.File
	bytes        int64
	seq          int
	windowSuffix string
	boundary     time.Time
	retrier      *retry.Retrier
	closeErr     error
}

// newWriteRetrier 构造落盘重试策略
func newWriteRetrier() *retry.Retrier {
	return retry.New(
		retry.Attempts(writeRetryAttempts),
		retry.Delay(writeRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

var _ xappend.Appender = (*Writer)(nil)

// New 创建滚动文件写入器
//
// dir 为日志目录（不存在时创建），base 为文件基础名（不含扩展名、
// 不含路径分隔符）。配置错误与目录不可写都在此 fail fast；
// 构造成功即代表初始文件已打开、worker 已就绪。
func New(dir, base string, opts ...Option) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrEmptyDir
	}
	if strings.TrimSpace(base) == "" || base != filepath.Base(base) {
		return nil, ErrEmptyBase
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := xfile.EnsureDir(filepath.Join(dir, base+".log")); err != nil {
		return nil, err
	}

	w := &Writer{
		cfg:     cfg,
		dir:     dir,
		base:    base,
		queue:   make(chan pendingWrite, cfg.capacity),
		ctrl:    make(chan ctrlReq),
		done:    make(chan struct{}),
		retrier: newWriteRetrier(),
	}

	now := cfg.clock.Now()
	w.windowSuffix = cfg.interval.suffix(now)
	w.boundary = cfg.interval.next(now)
	if cfg.sizeLimit > 0 {
		// 进程重启后继续既有序号，避免覆盖旧文件
		w.seq = w.scanMaxSeq()
	}

	// Closed → Open：打开初始文件，同时充当目录可写性探测
	if err := w.open(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirNotWritable, err)
	}

	go w.run()
	return w, nil
}

// Append 实现 Appender 接口：入队后立即返回，调用者线程上不做文件 I/O
//
// 队列满时按溢出策略处理；丢弃一律通过错误通道计数上报，
// 不作为错误返回（丢弃已被记账，调用点无需也无法处理）。
func (w *Writer) Append(rec *xrecord.Record, line []byte) error {
	if w.closed.Load() {
		return ErrShutdown
	}

	level := xrecord.LevelInfo
	if rec != nil {
		level = rec.Level
	}

	// 私有拷贝：入队数据的生命周期超出本次调用
	data := make([]byte, len(line))
	copy(data, line)
	p := pendingWrite{data: data, level: level}

	switch w.cfg.overflow {
	case DropOldest:
		for {
			select {
			case w.queue <- p:
				return nil
			default:
			}
			// 弹出最旧一条腾位；worker 可能抢先取走，弹空则直接重试
			select {
			case <-w.queue:
				w.report(xdiag.KindOverflowDrop, ErrQueueFull)
			default:
			}
		}

	case Block:
		timer := time.NewTimer(w.cfg.blockTimeout)
		defer timer.Stop()
		select {
		case w.queue <- p:
		case <-timer.C:
			w.report(xdiag.KindOverflowDrop, ErrQueueFull)
		}
		return nil

	default: // DropNewest
		select {
		case w.queue <- p:
		default:
			w.report(xdiag.KindOverflowDrop, ErrQueueFull)
		}
		return nil
	}
}

// Flush 实现 Appender 接口
//
// 阻塞直到 worker 处理完此刻之前入队的全部写入并完成 fsync。
// 显式、低频的同步点，等待时长只受 ctx 约束。
func (w *Writer) Flush(ctx context.Context) error {
	if w.closed.Load() {
		return ErrShutdown
	}

	req := ctrlReq{ack: make(chan error, 1)}
	select {
	case w.ctrl <- req:
	case <-w.done:
		return ErrShutdown
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.ack:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown 实现 Appender 接口，幂等
//
// 拒绝新写入，排空队列（FIFO），fsync 并关闭文件，等待 worker 退出。
// 返回后：关闭前入队的每条写入要么已落盘，要么已作为丢弃计数上报，
// 不存在无账可查的消失。
func (w *Writer) Shutdown(ctx context.Context) error {
	if w.closed.CompareAndSwap(false, true) {
		// ShuttingDown：worker 在收到该请求前不会退出，发送必达
		w.ctrl <- ctrlReq{shutdown: true}
	}

	select {
	case <-w.done:
		return w.closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequiresBytes 实现 Appender 接口：消费 Layout 渲染结果
func (w *Writer) RequiresBytes() bool {
	return true
}

// =============================================================================
// worker：以下代码只在 worker goroutine 上执行
// =============================================================================

// run worker 主循环
func (w *Writer) run() {
	defer close(w.done)

	for {
		select {
		case p := <-w.queue:
			w.handleWrite(p)
		case req := <-w.ctrl:
			// flush 与 shutdown 都先排空此刻已入队的写入
			w.drainQueue()
			err := w.syncFile()
			if req.shutdown {
				// ShuttingDown → Stopped
				if cerr := w.closeFile(); err == nil {
					err = cerr
				}
				w.closeErr = err
				return
			}
			req.ack <- err
		}
	}
}

// drainQueue 非阻塞地处理完队列中现存的全部写入
func (w *Writer) drainQueue() {
	for {
		select {
		case p := <-w.queue:
			w.handleWrite(p)
		default:
			return
		}
	}
}

// handleWrite 处理一条出队写入：检查轮转边界、落盘、维护计数
func (w *Writer) handleWrite(p pendingWrite) {
	now := w.cfg.clock.Now()
	w.maybeRotate(now, int64(len(p.data)))

	if w.file == nil {
		// 上次轮转开文件失败；本条写入前重试
		if err := w.open(); err != nil {
			w.report(xdiag.KindWriteFailure, err)
			return
		}
	}

	n, err := w.writeRetrying(p.data)
	if err != nil {
		w.report(xdiag.KindWriteFailure, err)
		return
	}
	w.bytes += int64(n)

	if w.cfg.hasSyncLevel && p.level.AtLeast(w.cfg.syncLevel) {
		if serr := w.file.Sync(); serr != nil {
			w.report(xdiag.KindWriteFailure, serr)
		}
	}
}

// maybeRotate 写入前检查生效的轮转策略
//
// 时间边界优先：跨入新窗口时序号归零；同一窗口内大小超限时序号递增。
// incoming 是即将写入的字节数，文件大小不会超过上限
// （单条超限写入除外，此时独占一个文件）。
func (w *Writer) maybeRotate(now time.Time, incoming int64) {
	if w.cfg.interval != Never && !w.boundary.IsZero() && !now.Before(w.boundary) {
		w.rotate(now, 0)
		return
	}
	if w.cfg.sizeLimit > 0 && w.bytes > 0 && w.bytes+incoming > w.cfg.sizeLimit {
		w.rotate(now, w.seq+1)
	}
}

// rotate 执行一次轮转：Open → Rotating → Open
//
// 对 worker 而言原子：关旧、换名、开新、清计数之间不处理任何写入。
// 新文件打开失败不致命——上报后句柄置空，下一条写入前重试，
// 期间 worker 保持运行。
func (w *Writer) rotate(now time.Time, seq int) {
	if w.file != nil {
		if err := w.file.Sync(); err != nil {
			w.report(xdiag.KindWriteFailure, err)
		}
		if err := w.file.Close(); err != nil {
			w.report(xdiag.KindWriteFailure, err)
		}
		w.file = nil
	}

	if seq == 0 {
		// 进入新时间窗口
		w.windowSuffix = w.cfg.interval.suffix(now)
		w.boundary = w.cfg.interval.next(now)
	}
	w.seq = seq

	if err := w.open(); err != nil {
		w.report(xdiag.KindWriteFailure, err)
	}

	if w.cfg.maxBackups > 0 {
		w.pruneBackups()
	}
}

// open 打开当前命名的活动文件并校准字节计数
//
// O_APPEND 追加模式：进程重启回到同一窗口时续写既有文件，
// 字节计数从实际文件大小续起，保证大小上限跨重启仍然成立。
func (w *Writer) open() error {
	path := filepath.Join(w.dir, w.fileName())
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return err
	}
	w.file = f
	w.bytes = 0
	if fi, serr := f.Stat(); serr == nil {
		w.bytes = fi.Size()
	}
	return nil
}

// writeRetrying 带有限重试的落盘
//
// 设计决策: 部分写入后的重试会产生重复字节，标记为不可重试直接放弃；
// 只有零进展的整条失败才值得再试。
func (w *Writer) writeRetrying(data []byte) (int, error) {
	var written int
	err := w.retrier.Do(func() error {
		n, werr := w.file.Write(data)
		if werr != nil && n > 0 {
			written = n
			return retry.Unrecoverable(werr)
		}
		written = n
		return werr
	})
	return written, err
}

// syncFile 刷盘当前文件
func (w *Writer) syncFile() error {
	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

// closeFile 关闭当前文件
func (w *Writer) closeFile() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// fileName 当前活动文件名
func (w *Writer) fileName() string {
	name := w.base
	if w.windowSuffix != "" {
		name += "." + w.windowSuffix
	}
	if w.seq > 0 {
		name += "." + strconv.Itoa(w.seq)
	}
	return name + ".log"
}

// scanMaxSeq 扫描目录中当前窗口已存在的最大序号
func (w *Writer) scanMaxSeq() int {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0
	}

	prefix := w.base + "."
	if w.windowSuffix != "" {
		prefix += w.windowSuffix + "."
	}

	maxSeq := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		start, end := len(prefix), len(name)-len(".log")
		if start >= end {
			// 序号为 0 的活动文件名（如 base.log），前后缀重叠
			continue
		}
		if n, perr := strconv.Atoi(name[start:end]); perr == nil && n > maxSeq {
			maxSeq = n
		}
	}
	return maxSeq
}

// pruneBackups 删除超出保留数量的最旧历史文件
//
// 尽力而为：列目录或删除失败只上报错误通道，不影响写入。
func (w *Writer) pruneBackups() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.report(xdiag.KindWriteFailure, err)
		return
	}

	type backup struct {
		name string
		mod  time.Time
	}

	active := w.fileName()
	prefix := w.base + "."
	var backups []backup
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == active {
			continue
		}
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, ierr := e.Info()
		if ierr != nil {
			continue
		}
		backups = append(backups, backup{name: name, mod: info.ModTime()})
	}

	if len(backups) <= w.cfg.maxBackups {
		return
	}

	sort.Slice(backups, func(i, j int) bool {
		if backups[i].mod.Equal(backups[j].mod) {
			return backups[i].name < backups[j].name
		}
		return backups[i].mod.Before(backups[j].mod)
	})

	for _, b := range backups[:len(backups)-w.cfg.maxBackups] {
		if rerr := os.Remove(filepath.Join(w.dir, b.name)); rerr != nil {
			w.report(xdiag.KindWriteFailure, rerr)
		}
	}
}

// report 上报内部故障（diag 未配置时 no-op）
func (w *Writer) report(kind xdiag.Kind, err error) {
	w.cfg.diag.Report(kind, err)
}
