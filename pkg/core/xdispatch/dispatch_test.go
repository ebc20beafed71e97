package xdispatch

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/append/xappend"
	"github.com/omeyang/logkit/pkg/core/xfilter"
	"github.com/omeyang/logkit/pkg/core/xrecord"
	"github.com/omeyang/logkit/pkg/observability/xdiag"
)

// fakeAppender 可编程的测试写入器
type fakeAppender struct {
	appends   atomic.Int64
	flushes   atomic.Int64
	shutdowns atomic.Int64
	lastLine  []byte
	wantBytes bool
	appendErr error
	flushErr  error
}

func (f *fakeAppender) Append(_ *xrecord.Record, line []byte) error {
	f.appends.Add(1)
	f.lastLine = line
	return f.appendErr
}

func (f *fakeAppender) Flush(context.Context) error {
	f.flushes.Add(1)
	return f.flushErr
}

func (f *fakeAppender) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	return nil
}

func (f *fakeAppender) RequiresBytes() bool { return f.wantBytes }

// countingLayout 统计渲染次数的 Layout
type countingLayout struct {
	renders atomic.Int64
}

func (c *countingLayout) Render(_ *xrecord.Record) []byte {
	c.renders.Add(1)
	return []byte("rendered\n")
}

// TestNewDispatchValidation 测试构建校验
func TestNewDispatchValidation(t *testing.T) {
	d, err := NewDispatch(nil)
	require.Nil(t, d)
	assert.ErrorIs(t, err, ErrNoAppenders)

	d, err = NewDispatch([]xappend.Appender{&fakeAppender{}, nil})
	require.Nil(t, d)
	assert.ErrorIs(t, err, ErrNilAppender)
}

// TestDispatchEnabled 测试过滤预检
func TestDispatchEnabled(t *testing.T) {
	f, err := xfilter.Parse("app=info|off")
	require.NoError(t, err)

	d, err := NewDispatch([]xappend.Appender{&fakeAppender{}}, WithMatcher(f))
	require.NoError(t, err)

	assert.True(t, d.Enabled("app::core", xrecord.LevelInfo))
	assert.False(t, d.Enabled("app::core", xrecord.LevelDebug))
	assert.False(t, d.Enabled("other", xrecord.LevelError))
}

// TestDispatchEnabledWithoutMatcher 测试未配置过滤器时全部通过
func TestDispatchEnabledWithoutMatcher(t *testing.T) {
	d, err := NewDispatch([]xappend.Appender{&fakeAppender{}})
	require.NoError(t, err)

	assert.True(t, d.Enabled("anything", xrecord.LevelTrace))
}

// TestDispatchRendersOnce 测试 Layout 对多个写入器只渲染一次
func TestDispatchRendersOnce(t *testing.T) {
	layout := &countingLayout{}
	a1 := &fakeAppender{wantBytes: true}
	a2 := &fakeAppender{wantBytes: true}

	d, err := NewDispatch([]xappend.Appender{a1, a2}, WithLayout(layout))
	require.NoError(t, err)

	d.Log(xrecord.New(xrecord.LevelInfo, "app", "hello"))

	assert.Equal(t, int64(1), layout.renders.Load())
	assert.Equal(t, []byte("rendered\n"), a1.lastLine)
	assert.Equal(t, []byte("rendered\n"), a2.lastLine)
}

// TestDispatchSkipsRenderWithoutByteConsumers 测试无字节消费者时跳过渲染
func TestDispatchSkipsRenderWithoutByteConsumers(t *testing.T) {
	layout := &countingLayout{}
	structured := &fakeAppender{wantBytes: false}

	d, err := NewDispatch([]xappend.Appender{structured}, WithLayout(layout))
	require.NoError(t, err)

	d.Log(xrecord.New(xrecord.LevelInfo, "app", "hello"))

	assert.Equal(t, int64(0), layout.renders.Load())
	assert.Equal(t, int64(1), structured.appends.Load())
	assert.Nil(t, structured.lastLine)
}

// TestDispatchIsolatesAppenderFailure 测试写入器故障域隔离
func TestDispatchIsolatesAppenderFailure(t *testing.T) {
	diag, err := xdiag.New()
	require.NoError(t, err)

	broken := &fakeAppender{wantBytes: true, appendErr: errors.New("disk full")}
	healthy := &fakeAppender{wantBytes: true}

	d, err := NewDispatch(
		[]xappend.Appender{broken, healthy},
		WithDiagnostics(diag),
	)
	require.NoError(t, err)

	d.Log(xrecord.New(xrecord.LevelInfo, "app", "hello"))

	// 故障写入器不影响健康写入器，失败被计数
	assert.Equal(t, int64(1), healthy.appends.Load())
	assert.Equal(t, uint64(1), diag.Count(xdiag.KindWriteFailure))
}

// TestDispatchClassifiesFailureByConsumer 测试失败按消费方式分类计数
//
// 字节消费者（文件/控制台）失败计入 write_failure，
// 结构化消费者（下游导出端）失败计入 sink_failure，各记一笔。
func TestDispatchClassifiesFailureByConsumer(t *testing.T) {
	diag, err := xdiag.New()
	require.NoError(t, err)

	writer := &fakeAppender{wantBytes: true, appendErr: errors.New("disk full")}
	sink := &fakeAppender{wantBytes: false, appendErr: errors.New("collector down")}

	d, err := NewDispatch(
		[]xappend.Appender{writer, sink},
		WithDiagnostics(diag),
	)
	require.NoError(t, err)

	d.Log(xrecord.New(xrecord.LevelWarn, "app", "hello"))

	assert.Equal(t, uint64(1), diag.Count(xdiag.KindWriteFailure))
	assert.Equal(t, uint64(1), diag.Count(xdiag.KindSinkFailure))
}

// TestDispatchFilteredRecordSkipsAppenders 测试被过滤的记录不触达写入器
func TestDispatchFilteredRecordSkipsAppenders(t *testing.T) {
	f, err := xfilter.Parse("app=warn")
	require.NoError(t, err)

	a := &fakeAppender{wantBytes: true}
	d, err := NewDispatch([]xappend.Appender{a}, WithMatcher(f))
	require.NoError(t, err)

	d.Log(xrecord.New(xrecord.LevelInfo, "app", "filtered out"))
	assert.Equal(t, int64(0), a.appends.Load())
}

// TestDispatchFlushAggregatesErrors 测试 Flush 聚合失败且不中断
func TestDispatchFlushAggregatesErrors(t *testing.T) {
	flushErr := errors.New("sync failed")
	broken := &fakeAppender{flushErr: flushErr}
	healthy := &fakeAppender{}

	d, err := NewDispatch([]xappend.Appender{broken, healthy})
	require.NoError(t, err)

	err = d.Flush(context.Background())
	assert.ErrorIs(t, err, flushErr)
	// 失败不中断：两个写入器都被 Flush
	assert.Equal(t, int64(1), healthy.flushes.Load())
}

// TestDispatchWithConsole 测试接到真实控制台写入器的端到端渲染
func TestDispatchWithConsole(t *testing.T) {
	var buf bytes.Buffer
	d, err := NewDispatch([]xappend.Appender{xappend.NewConsole(&buf)})
	require.NoError(t, err)

	d.Log(xrecord.New(xrecord.LevelInfo, "app::core", "hello"))
	require.NoError(t, d.Shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, " INFO app::core: hello")
	assert.True(t, out[len(out)-1] == '\n')
}
