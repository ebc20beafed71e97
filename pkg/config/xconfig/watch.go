package xconfig

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/omeyang/logkit/pkg/core/xdispatch"
)

// ReloadCallback 配置变更回调
//
// 变更且重建成功时 result 携带新配置与新管道，调用方负责原子替换
// 旧管道（如 xdispatch.SetDefault）并在排空后关停它；
// 重载失败时 result 为零值、err 说明原因，旧管道继续生效。
type ReloadCallback func(result Rebuilt, err error)

// Rebuilt 重建结果：新配置与据其构建的新管道
type Rebuilt struct {
	Config   *Config
	Pipeline *xdispatch.Pipeline
}

// watchOptions 监视器配置
type watchOptions struct {
	debounce  time.Duration
	buildOpts []BuildOption
}

// WatchOption 监视器配置选项
type WatchOption func(*watchOptions)

// WithDebounce 设置防抖时间
//
// 编辑器保存往往触发连续多个事件，防抖窗口内只重载一次。
// 默认 100ms。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithBuildOptions 设置重建管道时使用的 Build 选项
func WithBuildOptions(opts ...BuildOption) WatchOption {
	return func(o *watchOptions) {
		o.buildOpts = opts
	}
}

// Watcher 配置文件监视器
//
// 监控配置文件变更，变更后重新加载并构建新管道交给回调。
// 监视的是文件所在目录而非文件本身：编辑器的原子写入
// （写临时文件后 rename）会让对文件本身的监视失效。
type Watcher struct {
	path     string
	callback ReloadCallback
	watcher  *fsnotify.Watcher
	debounce time.Duration
	buildOpt []BuildOption

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
	timer   *time.Timer
}

// Watch 创建配置文件监视器
//
// 返回的监视器需要 StartAsync（或在独立 goroutine 中 Start）开始
// 监视，Stop 停止。初次加载由调用方自行完成，Watch 只负责变更。
func Watch(path string, callback ReloadCallback, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if _, err := detectFormat(path); err != nil {
		return nil, err
	}

	options := watchOptions{debounce: 100 * time.Millisecond}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconfig: create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(
			fmt.Errorf("xconfig: watch directory %s: %w", dir, err),
			closeErr,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		callback: callback,
		watcher:  fsWatcher,
		debounce: options.debounce,
		buildOpt: options.buildOpts,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start 启动监视，阻塞直到 Stop
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.run()
}

// StartAsync 在后台 goroutine 中启动监视，立即返回
func (w *Watcher) StartAsync() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop 停止监视，幂等
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	// 停掉防抖定时器，Stop 之后不再触发回调
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	w.cancel()
	w.running = false
	return w.watcher.Close()
}

// run 监视循环
func (w *Watcher) run() {
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.callback != nil {
				w.callback(Rebuilt{}, fmt.Errorf("xconfig: watch error: %w", err))
			}
		}
	}
}

// handleEvent 处理一个文件系统事件，带防抖
func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	if filepath.Base(event.Name) != filename {
		return
	}

	// Write: 就地修改；Create/Rename: 编辑器原子写入模式
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload 重新加载配置并构建新管道
func (w *Watcher) reload() {
	select {
	case <-w.ctx.Done():
		return
	default:
	}

	if w.callback == nil {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.callback(Rebuilt{}, err)
		return
	}

	pipeline, err := cfg.Build(w.buildOpt...)
	if err != nil {
		w.callback(Rebuilt{}, err)
		return
	}

	w.callback(Rebuilt{Config: cfg, Pipeline: pipeline}, nil)
}
