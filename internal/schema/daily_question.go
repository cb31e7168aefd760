package schema

import "time"

// DailyQuestion 每日一题缓存槽位
// 每 (user_id, log_date) 至多一条，重新生成时整体覆盖（upsert）。
// Payload 是外部内容生成方序列化好的 JSON 文本，核心不解析其内部结构。
type DailyQuestion struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uniq_daily_question,priority:1" json:"user_id"`
	LogDate   string    `gorm:"size:10;not null;uniqueIndex:uniq_daily_question,priority:2" json:"log_date"`
	Payload   string    `gorm:"type:text" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (DailyQuestion) TableName() string {
	return "daily_questions"
}
