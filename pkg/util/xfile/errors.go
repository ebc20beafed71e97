package xfile

import "errors"

var (
	// ErrEmptyPath 必需的路径参数为空
	ErrEmptyPath = errors.New("xfile: path is required")

	// ErrInvalidPath 路径格式无效（如显式目录路径）
	ErrInvalidPath = errors.New("xfile: invalid path")

	// ErrPathTraversal 检测到相对路径穿越（".." 路径段）
	ErrPathTraversal = errors.New("xfile: path traversal detected")

	// ErrNullByte 路径包含空字节；Linux 内核在 VFS 层会在空字节处截断路径，
	// 导致 Go 代码与操作系统看到的路径不一致
	ErrNullByte = errors.New("xfile: path contains null byte")

	// ErrInvalidPerm 目录权限无效（缺少所有者执行位时目录无法遍历）
	ErrInvalidPerm = errors.New("xfile: invalid directory permission")
)
