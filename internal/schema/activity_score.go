package schema

import "time"

// ActivityScore 一次已完成活动的得分记录
// 只追加：写入后不更新不删除。同一用户同一天可有多条（多轮测验）。
type ActivityScore struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"index;not null" json:"user_id"`
	ActivityType string    `gorm:"size:50;index;not null" json:"activity_type"` // 开放式标签：Reading / Math / GK ...
	ActivityName string    `gorm:"size:255;not null" json:"activity_name"`      // 故事标题、关卡名等自由文本
	Score        int       `gorm:"default:0" json:"score"`
	MaxScore     int       `gorm:"default:100" json:"max_score"` // 分母，不假定为 100
	LogDate      string    `gorm:"size:10;index;not null" json:"log_date"`
	CompletedAt  time.Time `gorm:"autoCreateTime" json:"completed_at"`
	Details      string    `gorm:"type:text" json:"details"`
}

// TableName 指定表名
func (ActivityScore) TableName() string {
	return "activity_scores"
}
