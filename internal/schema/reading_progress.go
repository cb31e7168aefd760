package schema

import "time"

// ReadingProgress 阅读理解的明细记录
// 与 ActivityScore 来自同一逻辑事件但相互独立，无外键关联。只追加。
type ReadingProgress struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           int64     `gorm:"index;not null" json:"user_id"`
	StoryID          string    `gorm:"size:100;not null" json:"story_id"`
	StoryTitle       string    `gorm:"size:255;not null" json:"story_title"`
	QuestionsTotal   int       `gorm:"default:0" json:"questions_total"`
	QuestionsCorrect int       `gorm:"default:0" json:"questions_correct"`
	TimeSpentSeconds int       `gorm:"default:0" json:"time_spent_seconds"`
	LogDate          string    `gorm:"size:10;index;not null" json:"log_date"`
	CompletedAt      time.Time `gorm:"autoCreateTime" json:"completed_at"`
}

// TableName 指定表名
func (ReadingProgress) TableName() string {
	return "reading_progress"
}
