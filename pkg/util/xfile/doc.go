// Package xfile 提供日志落盘路径的基础工具。
//
// 写入器在打开日志文件前经由本包完成两件事：
//
//   - [SanitizePath]: 净化文件路径格式——拒绝空路径、空字节、
//     显式目录路径与相对路径穿越（".." 路径段）
//   - [EnsureDir]: 确保文件的父目录存在（默认权限 0750）
//
// 路径穿越检测按路径段精确匹配，只有 ".." 作为独立段才被拒绝；
// 合法文件名如 "app..2024.log" 不会被误判。
//
// 本包只做格式净化，不做目录隔离：日志路径来自可信配置，
// 对抗性输入的沙箱化不在职责范围内。
package xfile
