package xconfig

import "errors"

var (
	// ErrEmptyPath 配置文件路径为空
	ErrEmptyPath = errors.New("xconfig: path is required")

	// ErrLoadFailed 配置文件读取失败
	ErrLoadFailed = errors.New("xconfig: failed to load config")

	// ErrParseFailed 配置内容解析失败
	ErrParseFailed = errors.New("xconfig: failed to parse config")

	// ErrUnsupportedFormat 不支持的配置格式（仅 YAML / JSON）
	ErrUnsupportedFormat = errors.New("xconfig: unsupported config format")

	// ErrUnmarshalFailed 配置反序列化失败
	ErrUnmarshalFailed = errors.New("xconfig: failed to unmarshal config")

	// ErrNoAppenders 配置中没有任何写入器
	ErrNoAppenders = errors.New("xconfig: at least one appender is required")

	// ErrUnknownAppender 未知的写入器类型
	ErrUnknownAppender = errors.New("xconfig: unknown appender type")

	// ErrUnknownLayout 未知的 Layout 名称（仅 text / json）
	ErrUnknownLayout = errors.New("xconfig: unknown layout")

	// ErrUnknownTarget 未知的控制台输出目标（仅 stdout / stderr）
	ErrUnknownTarget = errors.New("xconfig: unknown console target")

	// ErrUnknownInterval 未知的轮转周期名称
	ErrUnknownInterval = errors.New("xconfig: unknown rotation interval")

	// ErrUnknownOverflow 未知的溢出策略名称
	ErrUnknownOverflow = errors.New("xconfig: unknown overflow policy")

	// ErrUnknownSampleKey 未知的采样 key 策略（仅 random / target）
	ErrUnknownSampleKey = errors.New("xconfig: unknown sample key")
)
