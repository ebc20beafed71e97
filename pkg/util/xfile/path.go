package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段
//
// 逐字符扫描实现零分配；同时把 '/' 和 '\' 视为分隔符，
// Windows 风格的穿越写法在 Linux 上也被拒绝。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对日志文件路径做格式净化
//
// 规范化路径（消除 "." 与冗余斜杠），拒绝：
//   - 空路径与空字节
//   - 显式目录路径（尾随 "/" 或 "\"）
//   - 相对路径穿越（".." 作为独立路径段）
//
// 穿越检测按路径段精确匹配，不会误伤 "app..2024.log" 这类合法文件名。
// 绝对路径中被 Clean 解析掉的 ".."（如 "/var/log/../etc"）是合法路径
// 而非穿越。本函数只做格式净化，不限制目标目录。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 尾随分隔符检查必须在 Clean 之前，Clean 会移除尾部斜杠
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}

	return cleaned, nil
}
