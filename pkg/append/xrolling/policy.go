package xrolling

import (
	"strconv"
	"time"
)

// Interval 时间型轮转周期
type Interval int

const (
	// Never 不按时间轮转
	Never Interval = iota
	// EveryMinute 每分钟轮转
	EveryMinute
	// Hourly 每小时轮转
	Hourly
	// Daily 每天轮转
	Daily
)

// String 返回周期的可读名称
func (i Interval) String() string {
	switch i {
	case Never:
		return "never"
	case EveryMinute:
		return "minutely"
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	default:
		return "interval(" + strconv.Itoa(int(i)) + ")"
	}
}

// valid 判断是否为已定义周期
func (i Interval) valid() bool {
	return i >= Never && i <= Daily
}

// truncate 将 t 对齐到当前周期的起点
func (i Interval) truncate(t time.Time) time.Time {
	switch i {
	case EveryMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	case Hourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case Daily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

// next 计算 t 之后的下一个轮转边界
//
// Never 返回零值，调用方以 IsZero 判定无时间边界。
// 对齐到周期起点后加一个周期，与日期运算使用 AddDate 保证
// 夏令时切换日也得到正确的次日零点。
func (i Interval) next(t time.Time) time.Time {
	switch i {
	case EveryMinute:
		return i.truncate(t).Add(time.Minute)
	case Hourly:
		return i.truncate(t).Add(time.Hour)
	case Daily:
		return i.truncate(t).AddDate(0, 0, 1)
	default:
		return time.Time{}
	}
}

// suffixLayout 活动文件名的日期后缀格式，对外契约：
// 外部轮转工具可能依赖该命名，保持稳定。
func (i Interval) suffixLayout() string {
	switch i {
	case EveryMinute:
		return "2006-01-02-15-04"
	case Hourly:
		return "2006-01-02-15"
	case Daily:
		return "2006-01-02"
	default:
		return ""
	}
}

// suffix 返回 t 所在周期的文件名后缀，Never 返回空串
func (i Interval) suffix(t time.Time) string {
	layout := i.suffixLayout()
	if layout == "" {
		return ""
	}
	return i.truncate(t).Format(layout)
}
