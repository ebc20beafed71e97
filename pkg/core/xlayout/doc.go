// Package xlayout 提供 Record 到字节序列的纯格式化。
//
// # 契约
//
// Layout 是纯函数：不做 I/O、永不失败、确定性输出。渲染异常退化为
// 占位输出而非错误——损坏的布局绝不能拖垮日志调用点。
//
// # 标准布局
//
//   - [NewText]: 人类可读单行格式
//     `2006-01-02 15:04:05,000 LEVEL target: file:line msg k=v`
//   - [NewJSON]: 机器可读格式，一条记录一个 JSON 对象，fields 保持
//     插入顺序；[ParseRecord] 提供反向解析构成往返
//
// 终端着色不在本包职责内（外围渲染层实现）。
//
// 设计决策: 序列化基于 encoding/json 手写保序输出。通用 JSON 库对
// map 键排序或不保证字段顺序，与"字段按插入顺序渲染"的数据模型
// 约定冲突。
package xlayout
