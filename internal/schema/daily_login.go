package schema

import "time"

// DailyLogin 表示“用户 U 在日期 D 出现过”（无时分秒粒度）。
// 同一 (user_id, log_date) 至多一行，重复记录靠唯一索引幂等吸收。
type DailyLogin struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64     `gorm:"index;not null;uniqueIndex:uniq_daily_login,priority:1" json:"user_id"`
	LogDate  string    `gorm:"size:10;not null;uniqueIndex:uniq_daily_login,priority:2" json:"log_date"` // YYYY-MM-DD，按调用方本地日期
	LoggedAt time.Time `gorm:"autoCreateTime" json:"logged_at"`
}

// TableName 指定表名
func (DailyLogin) TableName() string {
	return "daily_logins"
}
