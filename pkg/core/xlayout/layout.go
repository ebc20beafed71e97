package xlayout

import "github.com/omeyang/logkit/pkg/core/xrecord"

// Layout 纯格式化器：Record → 字节序列
//
// 契约：
//   - 纯函数，不做任何 I/O
//   - 永不失败：渲染异常退化为尽力而为的占位输出，绝不把错误
//     传回日志调用点
//   - 确定性：相同 Record 产生相同输出
//   - 并发安全：构造后不可变，被所有生产者共享
//
// 输出以换行符结尾，Appender 直接落盘无需追加。
type Layout interface {
	// Render 渲染一条 Record
	Render(rec *xrecord.Record) []byte
}
