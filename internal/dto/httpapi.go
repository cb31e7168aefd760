package dto

// 与 UI 前端的契约保持稳定，字段一律蛇形命名。

type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
}

type StreakDTO struct {
	UserID     int64    `json:"user_id"`
	Streak     int      `json:"streak"`
	TotalDays  int      `json:"total_days"`
	Calendar   []string `json:"calendar"`    // 窗口内登录日期，升序
	WindowDays int      `json:"window_days"` // Calendar 的回溯窗口
}

type ScoreDTO struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	ActivityType string `json:"activity_type"`
	ActivityName string `json:"activity_name"`
	Score        int    `json:"score"`
	MaxScore     int    `json:"max_score"`
	LogDate      string `json:"log_date"`
	CompletedAt  string `json:"completed_at"`
	Details      string `json:"details,omitempty"`
}

type TypeStatDTO struct {
	ActivityType string  `json:"activity_type"`
	Count        int64   `json:"count"`
	AvgScore     float64 `json:"avg_score"`
	BestScore    int     `json:"best_score"`
}

type ReadingDTO struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"user_id"`
	StoryID          string  `json:"story_id"`
	StoryTitle       string  `json:"story_title"`
	QuestionsTotal   int     `json:"questions_total"`
	QuestionsCorrect int     `json:"questions_correct"`
	Accuracy         float64 `json:"accuracy"`
	TimeSpentSeconds int     `json:"time_spent_seconds"`
	LogDate          string  `json:"log_date"`
	CompletedAt      string  `json:"completed_at"`
}

type DailyQuestionDTO struct {
	UserID  int64  `json:"user_id"`
	LogDate string `json:"log_date"`
	Payload string `json:"payload"` // 外部生成方的 JSON 文本，原样透传
}
