package xappend

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// TestConsoleAppend 测试同步写出
func TestConsoleAppend(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	rec := xrecord.New(xrecord.LevelInfo, "app", "msg")
	require.NoError(t, c.Append(rec, []byte("line one\n")))
	require.NoError(t, c.Append(rec, []byte("line two\n")))

	assert.Equal(t, "line one\nline two\n", buf.String())
	assert.True(t, c.RequiresBytes())
}

// TestConsoleAppendAfterShutdown 测试关闭后拒绝投递
func TestConsoleAppendAfterShutdown(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	require.NoError(t, c.Shutdown(context.Background()))
	// Shutdown 幂等
	require.NoError(t, c.Shutdown(context.Background()))

	err := c.Append(nil, []byte("late\n"))
	assert.ErrorIs(t, err, ErrShutdown)
	assert.Empty(t, buf.String())
}

// TestConsoleFlushNoop 测试 Flush 对普通 writer 为 no-op
func TestConsoleFlushNoop(t *testing.T) {
	c := NewConsole(&bytes.Buffer{})
	assert.NoError(t, c.Flush(context.Background()))
}

// TestConsoleConcurrentNoInterleave 测试并发写出单条不交错
func TestConsoleConcurrentNoInterleave(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(id byte) {
			defer wg.Done()
			line := bytes.Repeat([]byte{'a' + id}, 32)
			line = append(line, '\n')
			for i := 0; i < 200; i++ {
				_ = c.Append(nil, line)
			}
		}(byte(g))
	}
	wg.Wait()

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		require.Len(t, line, 32)
		// 每行必须是单一字符，出现混杂说明写入交错
		assert.Equal(t, strings.Repeat(string(line[0]), 32), line)
	}
}

// TestConsoleNilWriterDefaultsStderr 测试 nil writer 默认 stderr
func TestConsoleNilWriterDefaultsStderr(t *testing.T) {
	c := NewConsole(nil)
	assert.NotNil(t, c.w)
}
