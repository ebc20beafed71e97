package xrolling_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/logkit/pkg/append/xrolling"
	"github.com/omeyang/logkit/pkg/core/xrecord"
	"github.com/omeyang/logkit/pkg/observability/xdiag"
)

// ExampleNew 演示创建异步滚动写入器
func ExampleNew() {
	dir, _ := os.MkdirTemp("", "xrolling")
	defer os.RemoveAll(dir)

	diag, _ := xdiag.New()
	w, err := xrolling.New(dir, "app",
		xrolling.WithInterval(xrolling.Daily),
		xrolling.WithSizeLimit(64<<20),
		xrolling.WithCapacity(4096),
		xrolling.WithDiagnostics(diag),
	)
	if err != nil {
		fmt.Println("create:", err)
		return
	}

	rec := xrecord.New(xrecord.LevelInfo, "app::core", "service started")
	_ = w.Append(rec, []byte("service started\n"))

	_ = w.Shutdown(context.Background())
	fmt.Println("dropped:", diag.Count(xdiag.KindOverflowDrop))
	// Output: dropped: 0
}

// ExampleNew_overflow 演示队列溢出策略的选择
func ExampleNew_overflow() {
	dir, _ := os.MkdirTemp("", "xrolling")
	defer os.RemoveAll(dir)

	// 诊断优先的场景宁可丢最旧、保最新
	w, err := xrolling.New(dir, "audit",
		xrolling.WithOverflow(xrolling.DropOldest),
	)
	if err != nil {
		fmt.Println("create:", err)
		return
	}
	defer w.Shutdown(context.Background())

	fmt.Println(xrolling.DropOldest)
	// Output: drop_oldest
}

// ExampleNewArchive 演示创建同步归档写入器
func ExampleNewArchive() {
	dir, _ := os.MkdirTemp("", "xrolling")
	defer os.RemoveAll(dir)

	a, err := xrolling.NewArchive(filepath.Join(dir, "app.log"),
		xrolling.WithArchiveMaxSize(100),
		xrolling.WithArchiveMaxBackups(7),
		xrolling.WithArchiveCompress(true),
	)
	if err != nil {
		fmt.Println("create:", err)
		return
	}
	defer a.Shutdown(context.Background())

	fmt.Println(a.RequiresBytes())
	// Output: true
}
