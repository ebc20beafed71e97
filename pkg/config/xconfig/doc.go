// Package xconfig 提供日志管道的声明式配置。
//
// 配置以 YAML 或 JSON 描述过滤指令、Layout、采样与写入器列表，
// [Load] / [LoadBytes] 负责解析，[Config.Build] 把配置物化为
// 可用的 xdispatch.Pipeline。所有配置错误在加载与构建期 fail fast。
//
// # 热更新
//
// [Watch] 基于 fsnotify 监控配置文件（含编辑器原子写入模式），
// 带防抖地重新加载并构建新管道交给回调；替换与旧管道的关停
// 时机由调用方掌握：
//
//	w, _ := xconfig.Watch(path, func(r xconfig.Rebuilt, err error) {
//	    if err != nil {
//	        return // 旧管道继续生效
//	    }
//	    old := xdispatch.SetDefault(r.Pipeline)
//	    _ = old.Shutdown(context.Background())
//	})
//	w.StartAsync()
//	defer w.Stop()
package xconfig
