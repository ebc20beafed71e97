package xfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirCreatesParent 测试父目录创建
func TestEnsureDirCreatesParent(t *testing.T) {
	tmpDir := t.TempDir()
	filename := filepath.Join(tmpDir, "a", "b", "app.log")

	require.NoError(t, EnsureDir(filename))

	info, err := os.Stat(filepath.Join(tmpDir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(DefaultDirPerm), info.Mode().Perm())
}

// TestEnsureDirExisting 测试目录已存在时不报错不改权限
func TestEnsureDirExisting(t *testing.T) {
	tmpDir := t.TempDir()
	sub := filepath.Join(tmpDir, "logs")
	require.NoError(t, os.Mkdir(sub, 0o700))

	require.NoError(t, EnsureDir(filepath.Join(sub, "app.log")))

	info, err := os.Stat(sub)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

// TestEnsureDirBareFilename 测试无目录部分的文件名为 no-op
func TestEnsureDirBareFilename(t *testing.T) {
	assert.NoError(t, EnsureDir("app.log"))
}

// TestEnsureDirValidation 测试参数校验
func TestEnsureDirValidation(t *testing.T) {
	assert.ErrorIs(t, EnsureDir(""), ErrEmptyPath)
	assert.ErrorIs(t, EnsureDir("a\x00/app.log"), ErrNullByte)
	assert.ErrorIs(t,
		EnsureDirWithPerm(filepath.Join(t.TempDir(), "x", "app.log"), 0o600),
		ErrInvalidPerm,
	)
}
