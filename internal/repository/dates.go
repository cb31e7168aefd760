package repository

import "time"

// DateLayout 日志日期格式（本地日历日，无时区换算）
const DateLayout = "2006-01-02"

// DateOf 取 t 所在时区的日历日期字符串
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// WindowStart 计算回溯 days 天的窗口起始日期（含当天，闭区间）
func WindowStart(now time.Time, days int) string {
	if days < 0 {
		days = 0
	}
	return now.AddDate(0, 0, -days).Format(DateLayout)
}

// ParseDate 解析 YYYY-MM-DD（本地时区）
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.Local)
}
