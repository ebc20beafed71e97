// Package xrecord 定义日志管道的数据模型：Record、Level、Field。
//
// # 设计约定
//
//   - Record 构造后不可变，交给管道后被所有 Dispatch 只读共享
//   - Level 数值越大严重程度越高（Trace < Debug < Info < Warn < Error）
//   - Field 保持插入顺序，Layout 按序渲染
//   - 构造永不失败：非法输入钳制或退化，不向日志调用点返回错误
//
// # 级别解析
//
// [ParseLevel] 支持 trace/debug/info/warn/warning/error/off（大小写不敏感）。
// Level 实现 encoding.TextMarshaler/TextUnmarshaler，支持配置文件直接
// 序列化/反序列化。[LevelOff] 仅用于过滤器默认值，不允许出现在 Record 中。
//
// 本包不依赖第三方库：Record 是所有其他包共享的零依赖通货。
package xrecord
