package xfile

import (
	"strings"
	"testing"
)

// FuzzSanitizePath 模糊测试路径净化的核心不变量
//
//   - 不 panic
//   - 成功返回的路径不含空字节、不含 ".." 路径段、不以分隔符结尾
func FuzzSanitizePath(f *testing.F) {
	seeds := []string{
		"app.log",
		"/var/log/app.log",
		"../etc/passwd",
		"logs/../../x",
		"app..2024.log",
		"..config",
		"logs/",
		"a\x00b",
		"..\\..\\windows",
		"/",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, in string) {
		out, err := SanitizePath(in)
		if err != nil {
			if out != "" {
				t.Fatalf("error with non-empty path: %q", out)
			}
			return
		}
		if strings.ContainsRune(out, 0) {
			t.Fatalf("null byte survived: %q", out)
		}
		if hasDotDotSegment(out) {
			t.Fatalf("traversal survived: %q", out)
		}
		if strings.HasSuffix(out, "/") || strings.HasSuffix(out, "\\") {
			t.Fatalf("directory path survived: %q", out)
		}
	})
}
