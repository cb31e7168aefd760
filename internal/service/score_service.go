package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/yuqie6/onepercent/internal/eventbus"
	"github.com/yuqie6/onepercent/internal/repository"
	"github.com/yuqie6/onepercent/internal/schema"
)

// ScoreService 活动得分台账服务
// 只追加、不校正：分数边界由调用方负责，台账忠实记录。
type ScoreService struct {
	scoreRepo   ScoreRepository
	readingRepo ReadingRepository
	hub         *eventbus.Hub
	now         func() time.Time
}

// NewScoreService 创建得分服务，now 为空时取 time.Now
func NewScoreService(scoreRepo ScoreRepository, readingRepo ReadingRepository, hub *eventbus.Hub, now func() time.Time) *ScoreService {
	if now == nil {
		now = time.Now
	}
	return &ScoreService{
		scoreRepo:   scoreRepo,
		readingRepo: readingRepo,
		hub:         hub,
		now:         now,
	}
}

// RecordScore 追加一条得分记录
// 完成时间与归档日期在写入时落定，之后不再重算。
func (s *ScoreService) RecordScore(ctx context.Context, userID int64, activityType, activityName string, score, maxScore int, details string) error {
	now := s.now()
	record := &schema.ActivityScore{
		UserID:       userID,
		ActivityType: activityType,
		ActivityName: activityName,
		Score:        score,
		MaxScore:     maxScore,
		LogDate:      repository.DateOf(now),
		CompletedAt:  now,
		Details:      details,
	}
	if err := s.scoreRepo.Append(ctx, record); err != nil {
		return err
	}

	s.hub.Publish(eventbus.Event{
		Type: eventbus.EventScoreRecorded,
		Data: map[string]any{"user_id": userID, "activity_type": activityType},
	})
	slog.Info("记录得分", "user_id", userID, "type", activityType, "name", activityName, "score", score)
	return nil
}

// TodayScores 今天的得分记录，最新在前；activityType 为空表示全部类型
func (s *ScoreService) TodayScores(ctx context.Context, userID int64, activityType string) ([]schema.ActivityScore, error) {
	today := repository.DateOf(s.now())
	return s.scoreRepo.GetByDate(ctx, userID, today, activityType)
}

// ScoreHistory 回溯 windowDays 天（含边界）的得分记录，按日期升序供趋势视图
func (s *ScoreService) ScoreHistory(ctx context.Context, userID int64, activityType string, windowDays int) ([]schema.ActivityScore, error) {
	start := repository.WindowStart(s.now(), windowDays)
	return s.scoreRepo.GetSince(ctx, userID, start, activityType)
}

// TodaySummary 今天按活动类型的聚合（条数 / 均分 / 最高分）
// 注意：均分是原始 score 的算术平均，默认各活动 max_score 统一为 100；
// 混入其他分母的活动时该均值会失真，调用方自行斟酌。
func (s *ScoreService) TodaySummary(ctx context.Context, userID int64) ([]repository.TypeStat, error) {
	today := repository.DateOf(s.now())
	return s.scoreRepo.StatsByDate(ctx, userID, today)
}

// RecordReadingProgress 追加一条阅读明细
// 与 RecordScore 相互独立：想同时落通用得分的调用方需要各调一次。
func (s *ScoreService) RecordReadingProgress(ctx context.Context, userID int64, storyID, storyTitle string, questionsTotal, questionsCorrect, timeSpentSeconds int) error {
	now := s.now()
	record := &schema.ReadingProgress{
		UserID:           userID,
		StoryID:          storyID,
		StoryTitle:       storyTitle,
		QuestionsTotal:   questionsTotal,
		QuestionsCorrect: questionsCorrect,
		TimeSpentSeconds: timeSpentSeconds,
		LogDate:          repository.DateOf(now),
		CompletedAt:      now,
	}
	if err := s.readingRepo.Append(ctx, record); err != nil {
		return err
	}

	s.hub.Publish(eventbus.Event{
		Type: eventbus.EventReadingRecorded,
		Data: map[string]any{"user_id": userID, "story_id": storyID},
	})
	slog.Info("记录阅读进度", "user_id", userID, "story", storyTitle, "correct", questionsCorrect, "total", questionsTotal)
	return nil
}

// ReadingHistory 回溯 windowDays 天的阅读记录，最新在前
func (s *ScoreService) ReadingHistory(ctx context.Context, userID int64, windowDays int) ([]schema.ReadingProgress, error) {
	start := repository.WindowStart(s.now(), windowDays)
	return s.readingRepo.GetSince(ctx, userID, start)
}

// ReadingAccuracy 单条阅读记录的正确率，零题故事按 0 分母保护处理
func ReadingAccuracy(r schema.ReadingProgress) float64 {
	total := r.QuestionsTotal
	if total < 1 {
		total = 1
	}
	return float64(r.QuestionsCorrect) / float64(total)
}

// AverageReadingAccuracy 一组阅读记录的平均正确率（先逐条算百分比再平均）
func AverageReadingAccuracy(records []schema.ReadingProgress) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += ReadingAccuracy(r)
	}
	return sum / float64(len(records))
}
