package xfilter

import (
	"testing"

	"github.com/omeyang/logkit/pkg/core/xrecord"
)

// FuzzParse 模糊测试指令解析：任意输入不 panic，成功解析的 Filter
// 求值保持确定性。
func FuzzParse(f *testing.F) {
	f.Add("app=debug,app::storage=warn|info")
	f.Add("=debug")
	f.Add("a=b=c")
	f.Add("||")
	f.Add(",,,")
	f.Add("app=TRACE,warn")

	f.Fuzz(func(t *testing.T, spec string) {
		filter, err := Parse(spec)
		if err != nil {
			return
		}
		// 解析成功则求值必须确定
		first := filter.Matches("app::core", xrecord.LevelInfo)
		for i := 0; i < 3; i++ {
			if got := filter.Matches("app::core", xrecord.LevelInfo); got != first {
				t.Fatalf("non-deterministic match: first=%v got=%v spec=%q", first, got, spec)
			}
		}
	})
}
